package component

// Dialogue points at the script a character speaks.
type Dialogue struct {
	Script string
	Show   bool
}

var DialogueComponent = NewComponent[Dialogue]()
