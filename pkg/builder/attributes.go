package builder

// === Global Attributes ===

// ID sets the id attribute
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.props["id"] = id
	return b
}

// Class sets the class attribute
func (b *ElementBuilder) Class(class string) *ElementBuilder {
	b.props["class"] = class
	return b
}

// Style sets the inline style attribute
func (b *ElementBuilder) Style(style string) *ElementBuilder {
	b.props["style"] = style
	return b
}

// Data sets a data-* attribute
func (b *ElementBuilder) Data(key, value string) *ElementBuilder {
	b.props["data-"+key] = value
	return b
}

// Width sets the width attribute
func (b *ElementBuilder) Width(width string) *ElementBuilder {
	b.props["width"] = width
	return b
}

// Height sets the height attribute
func (b *ElementBuilder) Height(height string) *ElementBuilder {
	b.props["height"] = height
	return b
}

// Charset sets the charset attribute
func (b *ElementBuilder) Charset(charset string) *ElementBuilder {
	b.props["charset"] = charset
	return b
}

// === SVG Attributes ===

// ViewBox sets the SVG viewBox attribute
func (b *ElementBuilder) ViewBox(v string) *ElementBuilder {
	b.props["viewBox"] = v
	return b
}

// Points sets x1/y1/x2/y2 on a line element
func (b *ElementBuilder) Points(x1, y1, x2, y2 float64) *ElementBuilder {
	b.props["x1"] = Num(x1)
	b.props["y1"] = Num(y1)
	b.props["x2"] = Num(x2)
	b.props["y2"] = Num(y2)
	return b
}

// Stroke sets the stroke attribute
func (b *ElementBuilder) Stroke(color string) *ElementBuilder {
	b.props["stroke"] = color
	return b
}

// === Custom Attributes ===

// Attr sets a custom attribute
func (b *ElementBuilder) Attr(key string, value interface{}) *ElementBuilder {
	b.props[key] = value
	return b
}
