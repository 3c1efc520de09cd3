package social

import "strings"

// DefaultDisplayNames maps lower-cased handles to the label used in titles.
// Individuals keep the @handle form.
var DefaultDisplayNames = map[string]string{
	"openai":          "OpenAI",
	"openaidevs":      "OpenAI",
	"anthropic":       "Anthropic",
	"googlelabs":      "Google Labs",
	"googleai":        "Google AI",
	"deepmind":        "DeepMind",
	"baidu_inc":       "Baidu",
	"huggingface":     "Hugging Face",
	"runwayml":        "Runway",
	"stabilityai":     "Stability AI",
	"midjourney":      "Midjourney",
	"replicate":       "Replicate",
	"together_ai":     "Together AI",
	"cohere":          "Cohere",
	"mistralai":       "Mistral AI",
	"perplexity_ai":   "Perplexity",
	"claudeai":        "Claude AI",
	"character_ai":    "Character.AI",
	"krea_ai":         "Krea AI",
	"wavespeed_ai":    "WaveSpeed AI",
	"higgsfield_ai":   "Higgsfield AI",
	"minimax__ai":     "MiniMax AI",
	"hailuo_ai":       "Hailuo AI",
	"extropic_ai":     "Extropic AI",
	"artificialanlys": "Artificial Analysis",
	"theworldlabs":    "The World Labs",
	"sama":            "@sama",
	"karpathy":        "@karpathy",
	"sundarpichai":    "@sundarpichai",
	"emollick":        "@emollick",
	"drfeifei":        "@drfeifei",
}

// displayName maps handle through names; unknown handles become "@handle".
func displayName(names map[string]string, handle string) string {
	if n, ok := names[strings.ToLower(handle)]; ok {
		return n
	}
	return "@" + handle
}
