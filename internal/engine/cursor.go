package engine

import (
	"path/filepath"

	"dirplay/internal/library"
	"dirplay/internal/pathutil"
)

// Lister returns the entries of a directory whose names contain filter.
type Lister interface {
	List(dir, filter string) ([]library.Entry, error)
}

// Cursor tracks the current directory, its sorted listing and the
// selected row. selected is -1 exactly when the listing is empty.
type Cursor struct {
	lister   Lister
	dir      string
	filter   string
	listing  []library.Entry
	selected int
	height   int
}

// NewCursor returns a cursor with no directory loaded yet.
func NewCursor(lister Lister, height int) *Cursor {
	return &Cursor{
		lister:   lister,
		selected: -1,
		height:   height,
	}
}

type cursorState struct {
	dir      string
	filter   string
	listing  []library.Entry
	selected int
}

func (c *Cursor) save() cursorState {
	return cursorState{
		dir:      c.dir,
		filter:   c.filter,
		listing:  c.listing,
		selected: c.selected,
	}
}

func (c *Cursor) restore(s cursorState) {
	c.dir = s.dir
	c.filter = s.filter
	c.listing = s.listing
	c.selected = s.selected
}

// EnterDirectory lists path unfiltered and makes it current. On failure
// the previous directory, listing and selection are kept.
func (c *Cursor) EnterDirectory(path string) error {
	prev := c.save()
	c.dir = path
	if err := c.Relist(""); err != nil {
		c.restore(prev)
		return err
	}
	return nil
}

// GoToParent moves one level up unless the current directory is root or
// the filesystem root. The directory we came from stays selected.
func (c *Cursor) GoToParent(root string) error {
	if c.dir == "" || pathutil.SamePath(c.dir, root) {
		return nil
	}
	parent := filepath.Dir(filepath.Clean(c.dir))
	if pathutil.SamePath(parent, c.dir) {
		return nil
	}

	from := c.dir
	if err := c.EnterDirectory(parent); err != nil {
		return err
	}
	c.SelectPath(from)
	return nil
}

// Relist reloads the current directory with filter. The listing is sorted
// and the selection moves to the first row. On failure nothing changes.
func (c *Cursor) Relist(filter string) error {
	entries, err := c.lister.List(c.dir, filter)
	if err != nil {
		return err
	}
	library.SortEntries(entries)

	c.listing = entries
	c.filter = filter
	if len(entries) > 0 {
		c.selected = 0
	} else {
		c.selected = -1
	}
	return nil
}

// Refresh relists with the active filter and keeps the selected entry
// selected if it is still present.
func (c *Cursor) Refresh() (changed bool, err error) {
	var keep string
	if e, ok := c.Selected(); ok {
		keep = e.Path
	}
	prev := c.listing
	prevSelected := c.selected

	if err := c.Relist(c.filter); err != nil {
		return false, err
	}
	if library.EqualListings(prev, c.listing) {
		c.selected = prevSelected
		return false, nil
	}
	if keep != "" {
		c.SelectPath(keep)
	}
	return true, nil
}

// SelectPath selects the entry with path and reports whether it exists.
func (c *Cursor) SelectPath(path string) bool {
	for i, e := range c.listing {
		if pathutil.SamePath(e.Path, path) {
			c.selected = i
			return true
		}
	}
	return false
}

func (c *Cursor) MoveTop() {
	if len(c.listing) == 0 {
		return
	}
	c.selected = 0
}

func (c *Cursor) MoveBottom() {
	if len(c.listing) == 0 {
		return
	}
	c.selected = len(c.listing) - 1
}

func (c *Cursor) MoveUp(step int) {
	c.moveTo(c.selected - step)
}

func (c *Cursor) MoveDown(step int) {
	c.moveTo(c.selected + step)
}

func (c *Cursor) moveTo(i int) {
	if len(c.listing) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.listing)-1 {
		i = len(c.listing) - 1
	}
	c.selected = i
}

// NextPage selects the first row of the following page.
func (c *Cursor) NextPage() {
	p := c.Page()
	if p.Total <= 1 || p.Current >= p.Total {
		return
	}
	c.selected = p.Current * c.rows()
}

// PreviousPage selects the first row of the preceding page.
func (c *Cursor) PreviousPage() {
	p := c.Page()
	if p.Total <= 1 || p.Current <= 1 {
		return
	}
	c.selected = (p.Current - 2) * c.rows()
}

// Page is the pagination view for the current geometry.
func (c *Cursor) Page() Page {
	return Paginate(c.rows(), len(c.listing), c.selected)
}

func (c *Cursor) rows() int {
	if c.height < 1 {
		return 1
	}
	return c.height
}

// SetHeight changes the number of visible rows.
func (c *Cursor) SetHeight(height int) {
	c.height = height
}

func (c *Cursor) Height() int {
	return c.height
}

// Selected returns the entry under the cursor.
func (c *Cursor) Selected() (library.Entry, bool) {
	if c.selected < 0 || c.selected >= len(c.listing) {
		return library.Entry{}, false
	}
	return c.listing[c.selected], true
}

// Selection returns the selected index and false when nothing is selected.
func (c *Cursor) Selection() (int, bool) {
	return c.selected, c.selected >= 0
}

func (c *Cursor) Dir() string {
	return c.dir
}

func (c *Cursor) Filter() string {
	return c.filter
}

// Listing returns a copy of the current listing.
func (c *Cursor) Listing() []library.Entry {
	return append([]library.Entry(nil), c.listing...)
}

// Files returns the File entries of the listing in listing order.
func (c *Cursor) Files() []library.Entry {
	var files []library.Entry
	for _, e := range c.listing {
		if !e.IsDir() {
			files = append(files, e)
		}
	}
	return files
}
