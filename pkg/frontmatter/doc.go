// Package frontmatter parses YAML frontmatter from Markdown documents
// such as skill files.
//
// Frontmatter is delimited by lines containing only "---" at the start
// of the document. The content between the delimiters is unmarshaled
// into the type parameter; everything after the closing delimiter is
// the body. Both LF and CRLF line endings are handled.
//
//	type SkillMeta struct {
//		Name        string `yaml:"name"`
//		Description string `yaml:"description"`
//	}
//
//	var meta SkillMeta
//	body, err := frontmatter.Parse(r, &meta)
//
// [Parse] treats frontmatter as optional: a document without it yields
// a zero matter value and the full content as body. [MustParse] fails
// with [ErrMissingFrontmatter] instead.
package frontmatter
