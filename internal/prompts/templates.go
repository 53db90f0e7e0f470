package prompts

// Shared directives
const (
	// MarkdownFormatPrompt closes every recipe prompt so answers keep code fenced.
	MarkdownFormatPrompt = "Enclose code snippets with three backticks like so: ```."

	// NoSelectionWarning is shown when there is no code to work on.
	NoSelectionWarning = "No code selected. Please select some code and try again."
)

// Docstring recipe templates
const (
	// DocstringPromptPrefix introduces the selected code to the model
	DocstringPromptPrefix = "Generate a comment documenting the parameters and functionality of the following {{VAR:language}} code:"

	// DocstringOnlyDocumentation keeps the model from echoing the code back
	DocstringOnlyDocumentation = "Only generate the documentation, do not generate the code."

	// DocstringGenericInstructions applies to any language without its own phrasing
	DocstringGenericInstructions = "Use the {{VAR:language}} documentation style to generate a {{VAR:language}} comment."

	// DocstringJavaInstructions asks for JavaDoc
	DocstringJavaInstructions = "Use the JavaDoc documentation style to generate a Java comment."

	// DocstringPythonInstructions asks for a docstring
	DocstringPythonInstructions = "Use a Python docstring to generate a Python multi-line string."

	// DocstringDisplayPrefix is the human-facing summary of the request
	DocstringDisplayPrefix = "Generate documentation for the following code:"

	// DocstringAssistantLeadIn opens the seeded assistant answer
	DocstringAssistantLeadIn = "Here is the generated documentation:"
)

// Bodies rendered with Render. Fences are not tagged in the prompt itself;
// only the seeded answer carries a language tag.
const (
	docstringPromptBody = DocstringPromptPrefix + "\n```\n{{VAR:selected_code}}\n```\n" +
		DocstringOnlyDocumentation + " {{VAR:additional_instructions}} " + MarkdownFormatPrompt

	docstringDisplayBody = DocstringDisplayPrefix + "\n```\n{{VAR:selected_code}}\n```"

	docstringAssistantBody = DocstringAssistantLeadIn + "\n```{{VAR:code_block_language}}\n{{VAR:doc_start}}"
)
