// Package rules holds mdcheck's built-in lint rules. Codes, names and
// messages follow markdownlint v0.32.1; the set is closed at these 27:
//
//	headings     MD001 MD003 MD018 MD019 MD020 MD021 MD022 MD023 MD024 MD025 MD026
//	lists        MD004 MD005 MD007 MD029 MD030
//	whitespace   MD009 MD010 MD012
//	blockquotes  MD027 MD028
//	code         MD014 MD031 MD046
//	html         MD033
//	links        MD011 MD051
//
// MD009, MD010, MD011, MD018, MD020 and MD021 look at raw lines through
// lint.ScanLines, which skips fenced code. Their targets are not nodes: a
// "#Heading" with no space parses as a paragraph.
//
// Importing the package registers every rule with lint.DefaultRegistry.
// Legacy markdownlint names such as "single-title" resolve as aliases.
package rules
