package form

import (
	"fmt"
	"strconv"

	"github.com/allfs/quadstorvtl/catalog"
)

// ExpandLabels returns the barcodes of a cartridge batch. A single cartridge
// takes prefix verbatim. A batch numbers the last run of digits in the
// 6-character prefix upwards and appends the media suffix.
func ExpandLabels(prefix string, count int, m catalog.MediaCode, worm bool) ([]string, error) {
	if count == 1 {
		return []string{prefix}, nil
	}

	if count < 1 {
		return nil, fail(ErrOutOfRange, "nvolumes", "Number of volumes has to be a number greater than zero")
	}

	if len(prefix) != 6 {
		return nil, fail(ErrWrongLength, "barcode", "Barcode prefix has to be 6 characters")
	}

	end := -1
	for i := len(prefix) - 1; i >= 0; i-- {
		if isDigit(prefix[i]) {
			end = i
			break
		}
	}

	if end < 0 {
		return nil, fail(ErrNonNumeric, "barcode", "Cannot get a numeric range from the specified barcode label prefix")
	}

	begin := end
	for begin > 0 && isDigit(prefix[begin-1]) {
		begin--
	}

	header, trailer := prefix[:begin], prefix[end+1:]
	width := end - begin + 1

	start, err := strconv.Atoi(prefix[begin : end+1])
	if err != nil {
		return nil, fail(ErrNonNumeric, "barcode", "Cannot get a numeric range from the specified barcode label prefix")
	}

	suffix := catalog.LabelSuffix(m, worm)
	want := catalog.LabelLength(m)

	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		num := fmt.Sprintf("%0*d", width, start+i)
		if len(num) > width {
			return nil, fail(ErrOutOfRange, "nvolumes",
				fmt.Sprintf("Barcode prefix %s leaves room for only %d VCartridges", prefix, i),
			)
		}

		label := header + num + trailer + suffix
		if want > 0 && len(label) != want {
			return nil, fail(ErrWrongLength, "barcode",
				fmt.Sprintf("VCartridge label \"%s\" is not valid", label),
			)
		}

		labels = append(labels, label)
	}

	return labels, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
