package db

import (
	"errors"
	"strconv"
	"strings"
)

// CreateArgs renders the FT.CREATE arguments (everything after the command name).
// Both drivers send the result verbatim.
func CreateArgs(idx *IndexDefinition) ([]string, error) {
	if idx.Name == "" {
		return nil, errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	args := []string{idx.Name}

	storage := idx.StorageType
	if storage == "" {
		storage = StorageHash
	}
	args = append(args, "ON", string(storage))

	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}

	args = append(args, "SCHEMA")

	for i := range idx.Fields {
		fieldArgs, err := fieldArgs(&idx.Fields[i])
		if err != nil {
			return nil, err
		}
		args = append(args, fieldArgs...)
	}

	return args, nil
}

func fieldArgs(f *IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, errors.New("field name is required")
	}

	args := []string{f.Name}

	if f.Alias != "" {
		args = append(args, "AS", f.Alias)
	}

	switch f.Type {
	case IndexFieldNumeric:
		args = append(args, "NUMERIC")

	case IndexFieldText:
		args = append(args, "TEXT")

	case IndexFieldTag:
		args = append(args, "TAG")
		if f.TagSeparator != "" {
			args = append(args, "SEPARATOR", f.TagSeparator)
		}
		if f.TagCaseSensitive {
			args = append(args, "CASESENSITIVE")
		}

	default:
		return nil, errors.New("unknown field type")
	}

	if f.Sortable {
		args = append(args, "SORTABLE")
	}

	return args, nil
}

// SearchListArgs renders FT.SEARCH arguments for a paginated query.
func SearchListArgs(index, query string, offset, limit int, fields []string) []string {
	args := []string{index, query, "LIMIT", strconv.Itoa(offset), strconv.Itoa(limit)}
	if len(fields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(fields)))
		args = append(args, fields...)
	}
	return args
}

// EscapeQuery escapes RediSearch query syntax so user input matches literally.
func EscapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

// EscapeTerms escapes each whitespace-separated term like EscapeQuery but keeps
// a trailing '*' as a prefix match ("piz*" finds "Pizza"). A bare "*" stays literal.
func EscapeTerms(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		stem, prefix := strings.CutSuffix(w, "*")
		if prefix && strings.TrimRight(stem, "*") != "" {
			words[i] = EscapeQuery(stem) + "*"
			continue
		}
		words[i] = EscapeQuery(w)
	}
	return strings.Join(words, " ")
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`,`, `\,`,
	`.`, `\.`,
	`/`, `\/`,
)

// ContainsIgnoreCase reports whether substr occurs in s, case-insensitively.
// Drivers use it to classify server error strings.
func ContainsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
