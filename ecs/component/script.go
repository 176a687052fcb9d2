package component

// Script attaches a tengo behaviour script, run once per step.
type Script struct {
	Path   string
	Memory map[string]any
}

var ScriptComponent = NewComponent[Script]()
