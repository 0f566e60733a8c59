// Package vtlconf turns a library draft into the configuration document the
// VTL engine reads.
package vtlconf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ansel1/merry"

	"github.com/allfs/quadstorvtl/catalog"
	"github.com/allfs/quadstorvtl/form"
)

// ErrMalformed is returned by Decode for documents it cannot read.
var ErrMalformed = merry.New("malformed vtlconf document")

type Drive struct {
	Name string            `json:"name" yaml:"name"`
	Type catalog.DriveCode `json:"type" yaml:"type"`
}

// Conf is a library ready to be handed to the engine.
type Conf struct {
	Name    string              `json:"name" yaml:"name"`
	Library catalog.LibraryCode `json:"type" yaml:"type"`
	Slots   int                 `json:"slots" yaml:"slots"`
	Drives  []Drive             `json:"drives" yaml:"drives"`

	// MaxDrives is the drive budget the library was built against.
	MaxDrives int `json:"-" yaml:"-"`
}

// Line is one row of the drive summary.
type Line struct {
	Type  catalog.DriveCode `json:"drivetype"`
	Name  string            `json:"name"`
	Count int               `json:"count"`
}

// Build checks d and assigns drive names. Drives past catalog.MaxDrives
// are dropped.
func Build(d *form.Draft) (*Conf, error) {
	return BuildLimit(d, catalog.MaxDrives)
}

// BuildLimit is Build with an explicit drive budget.
func BuildLimit(d *form.Draft, limit int) (*Conf, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, form.Invalid(form.ErrEmptyField, "lname", "VTL Name cannot be empty")
	}

	if !form.ValidString(d.Name) {
		return nil, form.Invalid(form.ErrInvalidCharacters, "lname", "VTL Name can only contain alphabets or numbers")
	}

	if len(d.Name) > form.NameMax {
		return nil, form.Invalid(form.ErrWrongLength, "lname",
			fmt.Sprintf("VTL Name cannot be longer than %d characters", form.NameMax),
		)
	}

	if _, ok := catalog.LookupLibrary(d.Library); !ok && d.Library != catalog.GenericLibrary {
		return nil, form.Invalid(form.ErrOutOfRange, "vselect", "Unknown library type")
	}

	if d.Slots <= 0 {
		return nil, form.Invalid(form.ErrOutOfRange, "slots", "Number of slots has to be greater than zero")
	}

	conf := &Conf{
		Name:      d.Name,
		Library:   d.Library,
		Slots:     d.Slots,
		MaxDrives: limit,
	}

	for _, e := range d.Drives {
		if !catalog.Accepts(d.Library, e.Type) {
			return nil, form.Invalid(form.ErrOutOfRange, "drivetype",
				fmt.Sprintf("VDrive type %d is not supported by the library type", e.Type),
			)
		}

		for i := 0; i < e.Count && len(conf.Drives) < limit; i++ {
			conf.Drives = append(conf.Drives, Drive{
				Name: fmt.Sprintf("drive%d", len(conf.Drives)),
				Type: e.Type,
			})
		}
	}

	if len(conf.Drives) == 0 {
		return nil, form.Invalid(form.ErrEmptyField, "ndrivetypes", "No VDrives specified")
	}

	return conf, nil
}

// Remaining returns how many more drives the library can take.
func (c *Conf) Remaining() int {
	if n := c.MaxDrives - len(c.Drives); n > 0 {
		return n
	}

	return 0
}

// DriveTypes returns the distinct drive types of the library in the order
// they were added.
func (c *Conf) DriveTypes() []catalog.DriveCode {
	var out []catalog.DriveCode
	seen := make(map[catalog.DriveCode]bool)
	for _, drv := range c.Drives {
		if !seen[drv.Type] {
			seen[drv.Type] = true
			out = append(out, drv.Type)
		}
	}

	return out
}

// Summary counts the drives of each type.
func (c *Conf) Summary() []Line {
	var lines []Line
	for _, t := range c.DriveTypes() {
		line := Line{Type: t}
		if drv, ok := catalog.LookupDrive(t); ok {
			line.Name = drv.Name
		}

		for _, drv := range c.Drives {
			if drv.Type == t {
				line.Count++
			}
		}

		lines = append(lines, line)
	}

	return lines
}

// Encode writes the document in the engine's format.
func (c *Conf) Encode(w io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<vtlconf>\n")
	fmt.Fprintf(&buf, "name: %s\n", c.Name)
	fmt.Fprintf(&buf, "slots: %d\n", c.Slots)
	fmt.Fprintf(&buf, "type: %d\n", c.Library)

	for _, drv := range c.Drives {
		fmt.Fprintf(&buf, "<drive>\n")
		fmt.Fprintf(&buf, "name: %s\n", drv.Name)
		fmt.Fprintf(&buf, "type: %d\n", drv.Type)
		fmt.Fprintf(&buf, "</drive>\n")
	}

	fmt.Fprintf(&buf, "</vtlconf>\n")

	_, err := buf.WriteTo(w)
	return err
}

// Matches reports whether o describes the same library as c, drive for
// drive.
func (c *Conf) Matches(o *Conf) bool {
	if c.Name != o.Name || c.Library != o.Library || c.Slots != o.Slots {
		return false
	}

	if len(c.Drives) != len(o.Drives) {
		return false
	}

	for i := range c.Drives {
		if c.Drives[i] != o.Drives[i] {
			return false
		}
	}

	return true
}

// Decode reads a document written by Encode.
func Decode(r io.Reader) (*Conf, error) {
	conf := &Conf{MaxDrives: catalog.MaxDrives}

	var (
		drv     *Drive
		started bool
		lineno  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "<vtlconf>":
			started = true
			continue
		case "</vtlconf>":
			if drv != nil {
				return nil, merry.Prependf(ErrMalformed, "line %d: unclosed <drive>", lineno)
			}
			return conf, nil
		case "<drive>":
			if !started || drv != nil {
				return nil, merry.Prependf(ErrMalformed, "line %d: unexpected <drive>", lineno)
			}
			drv = &Drive{}
			continue
		case "</drive>":
			if drv == nil {
				return nil, merry.Prependf(ErrMalformed, "line %d: unexpected </drive>", lineno)
			}
			conf.Drives = append(conf.Drives, *drv)
			drv = nil
			continue
		}

		if !started {
			return nil, merry.Prependf(ErrMalformed, "line %d: missing <vtlconf>", lineno)
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, merry.Prependf(ErrMalformed, "line %d: expected key: value", lineno)
		}

		value = strings.TrimSpace(value)

		if err := conf.set(drv, key, value); err != nil {
			return nil, merry.Prependf(ErrMalformed, "line %d: %v", lineno, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, merry.Prepend(ErrMalformed, "missing </vtlconf>")
}

func (c *Conf) set(drv *Drive, key, value string) error {
	if drv != nil {
		switch key {
		case "name":
			drv.Name = value
		case "type":
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			drv.Type = catalog.DriveCode(n)
		default:
			return fmt.Errorf("unknown drive key %q", key)
		}

		return nil
	}

	switch key {
	case "name":
		c.Name = value
	case "slots":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		c.Slots = n
	case "type":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		c.Library = catalog.LibraryCode(n)
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	return nil
}
