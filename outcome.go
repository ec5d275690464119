package serial

// Outcome is the uniform result of every session operation, shaped so the
// dispatcher can put it on the wire directly. A failed outcome always
// carries an explanatory Content; a successful receive carries the decoded
// device bytes, which may be empty.
type Outcome struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

func ok(content string) Outcome {
	return Outcome{Success: true, Content: content}
}

func fail(content string) Outcome {
	return Outcome{Success: false, Content: content}
}
