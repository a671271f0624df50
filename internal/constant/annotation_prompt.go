package constant

// AnnotationPromptV1 asks the model for a short summary plus a handful of
// keyword tags. The structured output shape itself is enforced through the
// response schema, not the prompt.
const AnnotationPromptV1 = "Analyze the following note and produce a short summary plus 3 keyword tags: "
