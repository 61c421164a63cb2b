package policy

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Policy is the annotation configuration: which derive to add, which
// declarations to leave alone, and which field types disqualify a
// declaration. Values are fixed for the lifetime of a run.
type Policy struct {
	Annotation       string   `toml:"annotation"`
	SkipTypes        []string `toml:"skip_types"`
	ProblematicTypes []string `toml:"problematic_types"`
	ExcludeFiles     []string `toml:"exclude_files"`
}

// Default returns the policy tuned for the async-openai type catalog.
func Default() Policy {
	return Policy{
		Annotation: "utoipa::ToSchema",
		SkipTypes: []string{
			"CreateSpeechResponse", // contains Bytes
			"AssistantStreamEvent", // contains ApiError
			"ImageResponse",        // contains Arc<Image>
			"Image",                // contains Arc<String>
		},
		ProblematicTypes: []string{
			"Bytes",
			"ApiError",
			"Arc<",
			"PathBuf",
			"InputSource",
			"WebSearchPreview",
			"AudioInput",
			"FileInput",
			"HostedToolType",
			"ToolDefinition",
			"ImageInput",
			"ResponseMetadata",
		},
	}
}

// Load reads a TOML policy file and overlays the keys it defines onto the
// defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (Policy, error) {
	p := Default()

	var file Policy
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return Policy{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("annotation") {
		p.Annotation = strings.TrimSpace(file.Annotation)
	}
	if meta.IsDefined("skip_types") {
		p.SkipTypes = file.SkipTypes
	}
	if meta.IsDefined("problematic_types") {
		p.ProblematicTypes = file.ProblematicTypes
	}
	if meta.IsDefined("exclude_files") {
		p.ExcludeFiles = file.ExcludeFiles
	}

	if p.Annotation == "" {
		return Policy{}, fmt.Errorf("%s: annotation must not be empty", path)
	}
	return p, nil
}

// Directive renders the attribute line inserted onto eligible declarations.
func (p Policy) Directive() string {
	return "#[derive(" + p.Annotation + ")]"
}

// Unqualified returns the bare trait name, the spelling used when the source
// imports the trait directly instead of using its full path.
func (p Policy) Unqualified() string {
	if idx := strings.LastIndex(p.Annotation, "::"); idx != -1 {
		return p.Annotation[idx+2:]
	}
	return p.Annotation
}
