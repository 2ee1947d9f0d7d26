package generation

import (
	"fmt"
	"strings"
)

const promptTemplate = "Given this information about a person's employment, assign a SIC and SOC code - %s, %s, %s."

// lineBreaks collapses embedded line breaks so each prompt stays on one line
// of the output file.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// BuildPrompt fills the fixed template with the subject, detail and context
// values, in that order.
func BuildPrompt(subject, detail, context string) string {
	return fmt.Sprintf(promptTemplate,
		lineBreaks.Replace(subject),
		lineBreaks.Replace(detail),
		lineBreaks.Replace(context),
	)
}
