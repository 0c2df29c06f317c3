package config

import "fmt"

// DefaultFileName is the config file written by "mdcheck init".
const DefaultFileName = ".mdcheck.yml"

// templateHeader precedes the serialized defaults in generated config files.
const templateHeader = `# mdcheck configuration
#
# style:   document style shared by "mdcheck fmt" and "mdcheck lint"
#          headings: consistent | atx | setext
#          unordered_lists: consistent | dash | asterisk | plus
#          bold: consistent | asterisk | underscore
# linter:  rule selection; exclude takes rule codes such as MD009
#          md046_style: consistent | fenced | indented
# fmt:     show_diff prints a unified diff with "fmt --check"
# run:     file discovery; jobs 0 means one worker per CPU
# output:  format text | json | sarif, color auto | always | never
#
# Every key can be overridden with MDCHECK_<SECTION>__<KEY>, for example
# MDCHECK_STYLE__HEADINGS=atx.`

// GenerateTemplate renders the default configuration as a commented YAML file.
func GenerateTemplate() ([]byte, error) {
	data, err := NewConfig().ToYAMLWithHeader(templateHeader)
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return data, nil
}
