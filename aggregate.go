package fpbench

// Observation is one measurement of one trial at one checkpoint.
type Observation struct {
	Items     uint64  // members inserted
	Load      float64 // Items / numBits
	Rate      float64 // measured false positive rate
	NumHashes int     // probes reported by the live filter
}

// Row is the reduction of every trial's observation at one checkpoint.
type Row struct {
	Items uint64
	Load  float64
	Mean  float64
	Min   float64
	Max   float64
}

// Curve is the aggregated false positive curve of one implementation at
// one bit capacity.
type Curve struct {
	Name    string
	NumBits uint64
	Trials  int // trials that contributed to Rows
	Rows    []Row
}

// Aggregate reduces per-trial observation sequences into one row per
// checkpoint index.
//
// Rows are aligned purely by index: the output is truncated to the shortest
// trial, and the first trial's item count and load label each row. Trials
// walk the same schedule, so their loads agree at every index; this is not
// verified.
func Aggregate(trials [][]Observation) []Row {
	if len(trials) == 0 {
		return nil
	}
	n := len(trials[0])
	for _, t := range trials[1:] {
		n = min(n, len(t))
	}

	rows := make([]Row, n)
	for i := range n {
		first := trials[0][i]
		row := Row{
			Items: first.Items,
			Load:  first.Load,
			Min:   first.Rate,
			Max:   first.Rate,
		}
		var sum float64
		for _, t := range trials {
			r := t[i].Rate
			sum += r
			row.Min = min(row.Min, r)
			row.Max = max(row.Max, r)
		}
		row.Mean = sum / float64(len(trials))
		rows[i] = row
	}
	return rows
}
