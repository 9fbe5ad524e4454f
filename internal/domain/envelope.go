package domain

import (
	"encoding/json"
	"fmt"
)

const (
	ResultOK   = "OK"
	ResultFail = "FAIL"
)

// Envelope - единый конверт ответа бэкенда: {result: "OK", data} или {result: "FAIL", error}.
type Envelope struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// FailError - прикладная ошибка бэкенда (result = FAIL).
// Message содержит строку бэкенда без изменений и показывается пользователю как есть.
type FailError struct {
	Op      string
	Message string
}

func (f *FailError) Error() string {
	return fmt.Sprintf("%s: backend failed: %s", f.Op, f.Message)
}

// NamedItem - элемент списка фильтров или кластеризаторов.
type NamedItem struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// FilterPreview - HTML-фрагменты предпросмотра фильтра по стадиям.
type FilterPreview struct {
	Basic     string `json:"basic"`
	Container string `json:"container"`
	Mixin     string `json:"mixin"`
	Splitter  string `json:"splitter"`
	Output    string `json:"output"`
}

// UnmarshalJSON принимает и старое имя поля "source" вместо "basic".
func (p *FilterPreview) UnmarshalJSON(data []byte) error {
	type plain FilterPreview
	var aux struct {
		plain
		Source *string `json:"source"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = FilterPreview(aux.plain)
	if p.Basic == "" && aux.Source != nil {
		p.Basic = *aux.Source
	}
	return nil
}

// GraphNode группы: 1 - фильтр, 2 - входной сегмент, 3 - выходной сегмент.
type GraphNode struct {
	Name  string `json:"name"`
	Group int    `json:"group"`
}

type GraphLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Value  int `json:"value"`
}

// Graph - граф зависимостей фильтров для force-раскладки.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}
