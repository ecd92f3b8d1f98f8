package controller

// ClearAllPrompt is the question asked before wiping the list.
const ClearAllPrompt = "Delete ALL tasks?"

// Confirmer answers a yes/no question. The front end decides how to ask.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Answered is a Confirmer for front ends that already collected the answer,
// such as a submitted dialog or form.
func Answered(yes bool) Confirmer {
	return ConfirmFunc(func(string) bool { return yes })
}
