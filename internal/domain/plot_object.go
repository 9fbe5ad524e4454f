package domain

// PlotObject описывает отрисованный график, который хранится в S3.
type PlotObject struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Data        []byte
	ContentType string // Example: "image/svg+xml"
}

func NewPlotObject(id, bucket, objectKey string, data []byte, contentType string) *PlotObject {
	return &PlotObject{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		ContentType: contentType,
	}
}

// Size возвращает размер объекта в байтах.
func (p *PlotObject) Size() int64 { return int64(len(p.Data)) }
