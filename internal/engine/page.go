package engine

// Page is the slice of the listing visible in a viewport of a given height.
// From and To are a half-open range; Current is 1-based.
type Page struct {
	From    int
	To      int
	Current int
	Total   int
}

// Paginate computes the page holding selected. A height below one is
// treated as one; an empty listing yields the zero Page.
func Paginate(height, length, selected int) Page {
	if length <= 0 {
		return Page{}
	}
	if height < 1 {
		height = 1
	}
	if selected < 0 {
		selected = 0
	}
	if selected >= length {
		selected = length - 1
	}

	current := selected/height + 1
	from := (current - 1) * height
	to := from + height
	if to > length {
		to = length
	}
	return Page{
		From:    from,
		To:      to,
		Current: current,
		Total:   (length + height - 1) / height,
	}
}
