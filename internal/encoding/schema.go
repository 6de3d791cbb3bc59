package encoding

// Field is one declared argument of an entry point.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered argument list one entry point expects. Schemas are
// declared next to the protocol encoders and validated generically, so the
// width and kind checks live in one place instead of per call site.
type Schema struct {
	EntryPoint string
	Fields     []Field
}
