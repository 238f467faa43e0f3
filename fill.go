package xlnest

// FillForward replaces every empty value with the nearest preceding non-empty one.
// Leading empty values stay empty.
func FillForward(values []string) []string {
	out := make([]string, len(values))
	last := ""
	for i, v := range values {
		if v != "" {
			last = v
		}
		out[i] = last
	}
	return out
}

// FillMerged reconstructs merged header cells. Row-header columns 0..X-2 are filled
// downward over the data rows and column-header rows 0..Y-1 are filled rightward over
// the data columns. The input grid is not modified.
func FillMerged(g Grid, o Origin) Grid {
	out := g.Clone(o.X + o.Width)

	for c := 0; c < o.X-1; c++ {
		last := ""
		for r := o.Y; r < o.Y+o.Height; r++ {
			if out[r][c] != "" {
				last = out[r][c]
			} else {
				out[r][c] = last
			}
		}
	}

	for r := 0; r < o.Y; r++ {
		last := ""
		for c := o.X; c < o.X+o.Width; c++ {
			if out[r][c] != "" {
				last = out[r][c]
			} else {
				out[r][c] = last
			}
		}
	}

	return out
}
