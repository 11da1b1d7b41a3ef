package content

// lessonSchema accepts the lesson shape produced by the backend. Only the
// title and body are required; list sections may be missing.
var lessonSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":               map[string]any{"type": "string", "minLength": 1},
		"content":             map[string]any{"type": "string"},
		"learning_objectives": stringList,
		"examples":            stringList,
		"key_takeaways":       stringList,
		"next_steps":          map[string]any{"type": "string"},
	},
	"required": []any{"title", "content"},
}

// exerciseSchema requires everything needed to collect and grade an answer.
var exerciseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question":       map[string]any{"type": "string", "minLength": 1},
		"options":        stringList,
		"correct_answer": map[string]any{"type": "string", "minLength": 1},
		"explanation":    map[string]any{"type": "string"},
	},
	"required": []any{"question", "correct_answer"},
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}
