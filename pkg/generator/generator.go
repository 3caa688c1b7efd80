package generator

import (
	"fmt"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/goliatone/go-extmodel/pkg/model"
)

// Generate renders one canonical model as a class definition in the
// configured dialect. The computation is pure: the same model and
// configuration always produce byte-identical text.
func Generate(m *model.Model, cfg Config) (string, error) {
	if m == nil {
		return "", fmt.Errorf("generator: model is required")
	}
	rules, ok := dialectTable[cfg.Dialect]
	if !ok {
		return "", fmt.Errorf("generator: unknown dialect %d", cfg.Dialect)
	}

	doc := newDocument()
	doc.set("extend", m.Extend)

	if uses := usesClasses(m); len(uses) > 0 {
		doc.set("uses", stringList(uses))
	}

	config := newDocument()

	var validators map[string][]model.Validation
	var requires []string
	if rules.inlineValidators && len(m.Validations()) > 0 {
		validators, requires = resolveValidators(m)
	}

	proxy := buildProxy(m, cfg, rules)

	if rules.supportsRequires {
		if proxy != nil {
			requires = append(requires, "Ext.data.proxy.Direct")
		}
		if class, found := identifierClasses[m.Identifier]; found {
			requires = append(requires, class)
		}
		if len(requires) > 0 {
			sort.Strings(requires)
			config.set("requires", stringList(dedupe(requires)))
		}
	}

	if m.Identifier != "" {
		config.set(rules.identifierKey, m.Identifier)
	}
	if m.IDProperty != "" && m.IDProperty != "id" {
		config.set("idProperty", m.IDProperty)
	}
	if rules.supportsVersionProperty && m.VersionProperty != "" {
		config.set("versionProperty", m.VersionProperty)
	}
	if m.ClientIDProperty != "" && m.ClientIDProperty != rules.clientIDDefault {
		config.set("clientIdProperty", m.ClientIDProperty)
	}

	fields := m.Fields()
	entries := make([]any, 0, len(fields))
	for _, field := range fields {
		entries = append(entries, fieldValue(field, cfg.Dialect, rules, validators[field.Name]))
	}
	config.set("fields", entries)

	if len(m.HasMany) > 0 {
		config.set("hasMany", stringList(m.HasMany))
	}
	if assocs := m.Associations(); len(assocs) > 0 {
		list := make([]any, 0, len(assocs))
		for _, assoc := range assocs {
			list = append(list, associationValue(assoc))
		}
		config.set("associations", list)
	}
	if validations := m.Validations(); len(validations) > 0 && !rules.inlineValidators {
		list := make([]any, 0, len(validations))
		for _, validation := range validations {
			list = append(list, validationValue(validation, true))
		}
		config.set("validations", list)
	}
	if proxy != nil {
		config.set("proxy", proxy)
	}

	if rules.nestedConfig {
		doc.set("config", config)
	} else {
		doc.merge(config)
	}

	body, err := renderDocument(doc, cfg.Debug)
	if err != nil {
		return "", fmt.Errorf("generator: render %s: %w", m.Name, err)
	}

	var sb strings.Builder
	sb.WriteString(`Ext.define("`)
	sb.WriteString(m.Name)
	sb.WriteString(`",`)
	if cfg.Debug {
		sb.WriteByte('\n')
	}
	sb.WriteString(body)
	sb.WriteString(");")

	return postProcess(sb.String(), cfg), nil
}

// usesClasses collects the association target classes, sorted, with the
// owning model excluded. The associations list itself keeps self-references;
// only the uses set filters them.
func usesClasses(m *model.Model) []string {
	assocs := m.Associations()
	if len(assocs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(assocs))
	for _, assoc := range assocs {
		set[assoc.Model] = struct{}{}
	}
	delete(set, m.Name)
	return sortedSet(set)
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, entry := range sorted {
		if i > 0 && entry == sorted[i-1] {
			continue
		}
		out = append(out, entry)
	}
	return out
}

var lineBreakPattern = regexp.MustCompile(`\r?\n`)

// postProcess applies the textual toggles: quote style first, then line
// ending normalization over every break in the rendered text.
func postProcess(text string, cfg Config) string {
	if cfg.UseSingleQuotes {
		text = strings.ReplaceAll(text, `"`, `'`)
	}

	switch cfg.LineEnding {
	case LineEndingCRLF:
		text = lineBreakPattern.ReplaceAllString(text, "\r\n")
	case LineEndingLF:
		text = lineBreakPattern.ReplaceAllString(text, "\n")
	default:
		text = lineBreakPattern.ReplaceAllString(text, nativeLineEnding())
	}
	return text
}

func nativeLineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
