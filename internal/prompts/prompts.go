package prompts

// DescribePrompt is the fixed instruction sent with every image. The
// wording embeds the facets (objects, colors, people, background, mood)
// that make the resulting description a useful embedding source.
const DescribePrompt = `Describe this image in detail. Describe what you see, the colors, objects, people, background and mood. The answer should be specific and informative.`
