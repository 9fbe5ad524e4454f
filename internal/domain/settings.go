package domain

// Kind - вид сущности, которую настраивает оператор.
type Kind string

const (
	KindFilter    Kind = "filter"
	KindClusterer Kind = "clusterer"
)

// FieldType - тип значения поля настроек.
type FieldType int

const (
	StringField FieldType = iota
	BoolField
)

func (t FieldType) String() string {
	if t == BoolField {
		return "bool"
	}
	return "string"
}

// Field ссылается на одно поле конкретной записи настроек.
// Чтение и запись через Field меняют саму запись.
type Field struct {
	Name string
	Type FieldType
	text *string
	flag *bool
}

func textField(name string, p *string) Field {
	return Field{Name: name, Type: StringField, text: p}
}

func flagField(name string, p *bool) Field {
	return Field{Name: name, Type: BoolField, flag: p}
}

// Text возвращает значение строкового поля.
func (f Field) Text() string {
	if f.text == nil {
		return ""
	}
	return *f.text
}

// Flag возвращает значение логического поля.
func (f Field) Flag() bool {
	if f.flag == nil {
		return false
	}
	return *f.flag
}

func (f Field) SetText(v string) {
	if f.text != nil {
		*f.text = v
	}
}

func (f Field) SetFlag(v bool) {
	if f.flag != nil {
		*f.flag = v
	}
}

// Value возвращает значение поля как string или bool.
func (f Field) Value() any {
	if f.Type == BoolField {
		return f.Flag()
	}
	return f.Text()
}

// Record - запись настроек фильтра или кластеризатора с фиксированным набором полей.
type Record interface {
	Kind() Kind
	Name() string
	Fields() []Field
}

// FilterSettings - настройки фильтра textlab.
type FilterSettings struct {
	FilterName string `json:"filter_name"`

	SegmentName       string `json:"segment_name"`
	SegmentValueRegex string `json:"segment_value_regex"`
	SegmentNegRegex   string `json:"segment_neg_regex"`
	CreatesSegment    bool   `json:"creates_segment"`
	OutputName        string `json:"output_name"`

	DocumentPrefix   string `json:"document_prefix"`
	DocumentRegex    string `json:"document_regex"`
	DocumentNegRegex string `json:"document_neg_regex"`

	ContainerName       string `json:"container_name"`
	ContainerValueRegex string `json:"container_value_regex"`
	ContainerNegRegex   string `json:"container_neg_regex"`
	ContainerIncludes   bool   `json:"container_includes"`
	ContainerKeepSource bool   `json:"container_keep_source"`

	SplitterLeft     string `json:"splitter_left"`
	SplitterRegex    string `json:"splitter_regex"`
	SplitterRight    string `json:"splitter_right"`
	SplitterNegRegex string `json:"splitter_neg_regex"`

	MixinName       string `json:"mixin_name"`
	MixinValueRegex string `json:"mixin_value_regex"`
	MixinNegRegex   string `json:"mixin_neg_regex"`
}

// NewFilterSettings возвращает пустой фильтр со значениями по умолчанию.
func NewFilterSettings() *FilterSettings {
	return &FilterSettings{
		ContainerIncludes:   true,
		ContainerKeepSource: true,
	}
}

func (s *FilterSettings) Kind() Kind   { return KindFilter }
func (s *FilterSettings) Name() string { return s.FilterName }

// Fields перечисляет поля в порядке формы: сначала строковые, затем логические.
func (s *FilterSettings) Fields() []Field {
	return []Field{
		textField("filter_name", &s.FilterName),
		textField("segment_name", &s.SegmentName),
		textField("segment_value_regex", &s.SegmentValueRegex),
		textField("segment_neg_regex", &s.SegmentNegRegex),
		textField("output_name", &s.OutputName),
		textField("document_prefix", &s.DocumentPrefix),
		textField("document_regex", &s.DocumentRegex),
		textField("document_neg_regex", &s.DocumentNegRegex),
		textField("container_name", &s.ContainerName),
		textField("container_value_regex", &s.ContainerValueRegex),
		textField("container_neg_regex", &s.ContainerNegRegex),
		textField("splitter_left", &s.SplitterLeft),
		textField("splitter_regex", &s.SplitterRegex),
		textField("splitter_right", &s.SplitterRight),
		textField("splitter_neg_regex", &s.SplitterNegRegex),
		textField("mixin_name", &s.MixinName),
		textField("mixin_value_regex", &s.MixinValueRegex),
		textField("mixin_neg_regex", &s.MixinNegRegex),
		flagField("creates_segment", &s.CreatesSegment),
		flagField("container_includes", &s.ContainerIncludes),
		flagField("container_keep_source", &s.ContainerKeepSource),
	}
}

// ClustererSettings - настройки кластеризатора textlab.
type ClustererSettings struct {
	ClustererName string `json:"clusterer_name"`
	SegmentName   string `json:"segment_name"`
	Dictionary    string `json:"dictionary"`
	LDAModel      string `json:"lda_model"`
}

func NewClustererSettings() *ClustererSettings {
	return &ClustererSettings{}
}

func (s *ClustererSettings) Kind() Kind   { return KindClusterer }
func (s *ClustererSettings) Name() string { return s.ClustererName }

func (s *ClustererSettings) Fields() []Field {
	return []Field{
		textField("clusterer_name", &s.ClustererName),
		textField("segment_name", &s.SegmentName),
		textField("dictionary", &s.Dictionary),
		textField("lda_model", &s.LDAModel),
	}
}
