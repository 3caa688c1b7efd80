package generator

import (
	"github.com/goliatone/go-extmodel/pkg/model"
)

// buildProxy assembles the proxy document, or nil when the model configures
// nothing beyond the implicit direct type. API method references are JS
// expressions and render unquoted unless the configuration quotes them.
func buildProxy(m *model.Model, cfg Config, rules dialectRules) *document {
	doc := newDocument()
	doc.set("type", "direct")

	apiValue := func(method string) any {
		if cfg.SurroundAPIWithQuotes {
			return method
		}
		return raw(method)
	}

	onlyRead := m.ReadMethod != "" && m.CreateMethod == "" &&
		m.UpdateMethod == "" && m.DestroyMethod == ""
	if onlyRead {
		doc.set("directFn", apiValue(m.ReadMethod))
	} else if m.ReadMethod != "" || m.CreateMethod != "" || m.UpdateMethod != "" || m.DestroyMethod != "" {
		api := newDocument()
		if m.ReadMethod != "" {
			api.set("read", apiValue(m.ReadMethod))
		}
		if m.CreateMethod != "" {
			api.set("create", apiValue(m.CreateMethod))
		}
		if m.UpdateMethod != "" {
			api.set("update", apiValue(m.UpdateMethod))
		}
		if m.DestroyMethod != "" {
			api.set("destroy", apiValue(m.DestroyMethod))
		}
		doc.set("api", api)
	}

	if m.DisablePagingParameters {
		doc.set("pageParam", "")
		doc.set("startParam", "")
		doc.set("limitParam", "")
	}

	if reader := buildReader(m, rules); reader != nil {
		doc.set("reader", reader)
	}
	if writer := buildWriter(m); writer != nil {
		doc.set("writer", writer)
	}

	// Only the implicit type: no proxy worth emitting.
	if doc.len() == 1 {
		return nil
	}
	return doc
}

func buildReader(m *model.Model, rules dialectRules) *document {
	root := m.RootProperty
	if root == "" && m.Paging {
		// Paged reads wrap their records; the framework's conventional root.
		root = "records"
	}

	doc := newDocument()
	if m.Reader != "" {
		doc.set("type", m.Reader)
	}
	if root != "" {
		doc.set(rules.readerRootKey, root)
	}
	if m.TotalProperty != "" {
		doc.set("totalProperty", m.TotalProperty)
	}
	if m.SuccessProperty != "" {
		doc.set("successProperty", m.SuccessProperty)
	}
	if m.MessageProperty != "" {
		doc.set("messageProperty", m.MessageProperty)
	}
	if doc.empty() {
		return nil
	}
	return doc
}

func buildWriter(m *model.Model) *document {
	writerConfigured := m.Writer != "" || m.WriteAllFields ||
		(m.ClientIDProperty != "" && m.ClientIDPropertyAddToWriter) ||
		!m.AllDataOptions.Empty() || !m.PartialDataOptions.Empty()
	if !writerConfigured {
		return nil
	}

	doc := newDocument()
	writerType := m.Writer
	if writerType == "" {
		writerType = "json"
	}
	doc.set("type", writerType)
	if m.WriteAllFields {
		doc.set("writeAllFields", true)
	}
	if m.ClientIDProperty != "" && m.ClientIDPropertyAddToWriter {
		doc.set("clientIdProperty", m.ClientIDProperty)
	}
	if !m.AllDataOptions.Empty() {
		doc.set("allDataOptions", dataOptionsValue(m.AllDataOptions))
	}
	if !m.PartialDataOptions.Empty() {
		doc.set("partialDataOptions", dataOptionsValue(m.PartialDataOptions))
	}
	return doc
}

func dataOptionsValue(opts model.DataOptions) *document {
	doc := newDocument()
	if opts.Associated != nil {
		doc.set("associated", *opts.Associated)
	}
	if opts.Changes != nil {
		doc.set("changes", *opts.Changes)
	}
	if opts.Critical != nil {
		doc.set("critical", *opts.Critical)
	}
	if opts.Persist != nil {
		doc.set("persist", *opts.Persist)
	}
	return doc
}
