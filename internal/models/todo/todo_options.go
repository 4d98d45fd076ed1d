package todo

// Field - одна пара (колонка, значение) частичного обновления.
// Порядок полей сохраняется таким, каким его прислал клиент.
type Field struct {
	Column string
	Value  any
}

// Patch - набор полей, явно присутствовавших в запросе.
// Отсутствующее поле сюда не попадает вообще - этим Patch отличается
// от обновления "по непустым значениям".
type Patch struct {
	fields []Field
}

type PatchOption func(*Patch)

func WithTitle(title string) PatchOption {
	return func(p *Patch) {
		p.fields = append(p.fields, Field{Column: ColumnTitle, Value: title})
	}
}

// WithDescription принимает указатель: nil означает явный NULL,
// пустая строка - явную пустую строку. Оба значения применяются.
func WithDescription(description *string) PatchOption {
	return func(p *Patch) {
		p.fields = append(p.fields, Field{Column: ColumnDescription, Value: description})
	}
}

func WithCompleted(completed bool) PatchOption {
	return func(p *Patch) {
		p.fields = append(p.fields, Field{Column: ColumnCompleted, Value: completed})
	}
}

func NewPatch(opts ...PatchOption) *Patch {
	p := &Patch{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

func (p *Patch) Empty() bool {
	return len(p.fields) == 0
}

// Fields возвращает внутренний срез, сервис нормализует значения на месте
func (p *Patch) Fields() []Field {
	return p.fields
}
