package refine

// Prompt templates for the refinement analysis. Rendered with fmt.Sprintf;
// the schema is interpolated as JSON inside the fenced block.
//
// The context-aware variant adds an Additional Context section between the
// schema and the analysis instructions and is selected once at construction.

const analysisInstructions = "**Analysis Instructions**:\n" +
	"1. **Break Down User Request:**\n" +
	"* Clearly identify the core entities or data types the user is asking for.\n" +
	"* Highlight any specific attributes or relationships mentioned in the request.\n\n" +
	"2. **Map to JSON Schema**:\n" +
	"* For each identified element in the user request, pinpoint its exact counterpart in the JSON schema.\n" +
	"* Explain how the schema structure accommodates the user's needs.\n" +
	"* If applicable, mention any schema elements that are not directly addressed in the user's request.\n\n" +
	"This analysis will be used to guide the HTML structure examination and ultimately inform the code generation process.\n" +
	"Please generate only the analysis and no other text.\n\n" +
	"**Response**:"

// reasoningTemplate takes the user's request and the simplified schema JSON.
const reasoningTemplate = "**Task**: Analyze the user's request and the provided JSON schema to clearly map the desired data extraction.\n" +
	"Break down the user's request into key components, and then explicitly connect these components to the corresponding elements within the JSON schema.\n\n" +
	"**User's Request**:\n%s\n\n" +
	"**Desired JSON Output Schema**:\n```json\n%s\n```\n\n" +
	analysisInstructions

// reasoningTemplateWithContext additionally takes the configured context text.
const reasoningTemplateWithContext = "**Task**: Analyze the user's request, the provided JSON schema, and the additional context the user provided to clearly map the desired data extraction.\n" +
	"Break down the user's request into key components, and then explicitly connect these components to the corresponding elements within the JSON schema.\n\n" +
	"**User's Request**:\n%s\n\n" +
	"**Desired JSON Output Schema**:\n```json\n%s\n```\n\n" +
	"**Additional Context**:\n%s\n\n" +
	analysisInstructions
