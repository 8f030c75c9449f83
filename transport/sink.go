package transport

// DataSink collects named diagnostic fields for export. Operators register
// their fields once; PrepareDataFields projects current coefficient values
// into the registered slots before each output cycle. Entirely passive:
// rendering and persistence live with the caller.
type DataSink struct {
	names  []string
	fields map[string][]float64
}

func NewDataSink() *DataSink {
	return &DataSink{fields: make(map[string][]float64)}
}

func (d *DataSink) Register(name string, n int) {
	if _, exists := d.fields[name]; exists {
		return
	}
	d.names = append(d.names, name)
	d.fields[name] = make([]float64, n)
}

func (d *DataSink) Set(name string, vals []float64) {
	if dst, ok := d.fields[name]; ok {
		copy(dst, vals)
	}
}

// Names returns the registration-ordered field names.
func (d *DataSink) Names() []string { return d.names }

func (d *DataSink) Field(name string) []float64 { return d.fields[name] }
