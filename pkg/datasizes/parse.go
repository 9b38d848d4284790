package datasizes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var plainNumber = regexp.MustCompile(`[[:digit:]]+`)

// Parse converts a size specified as a string in KB/KiB/MB/etc. to
// a number of bytes represented by uint64.
func Parse(size string) (uint64, error) {
	// Pre-process the input
	size = strings.TrimSpace(size)

	// Get the number from the string
	numberAsStr := plainNumber.FindString(size)
	if len(numberAsStr) == 0 {
		return 0, fmt.Errorf("the size string doesn't contain any number: %s", size)
	}

	// Parse the number into integer
	returnSize, err := strconv.ParseUint(numberAsStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse size as integer: %s", numberAsStr)
	}

	// List of all supported units (from kB to TiB)
	units := []struct {
		units    string
		multiple uint64
	}{
		{units: "kB", multiple: KiloByte},
		{units: "KiB", multiple: KibiByte},
		{units: "MB", multiple: MegaByte},
		{units: "MiB", multiple: MebiByte},
		{units: "GB", multiple: GigaByte},
		{units: "GiB", multiple: GibiByte},
		{units: "TB", multiple: TeraByte},
		{units: "TiB", multiple: TebiByte},
	}

	// If the string contains only number, return it
	if numberAsStr == size {
		return returnSize, nil
	}

	// Check all supported units
	for _, unit := range units {
		re := regexp.MustCompile(`^\s*` + numberAsStr + `\s*` + unit.units + `\s*$`)
		if re.MatchString(size) {
			return returnSize * unit.multiple, nil
		}
	}

	// In case the strign didn't match any of the above regexes, return nil
	// even if a number was found. This is to prevent users from submitting
	// unknown units.
	return 0, fmt.Errorf("unknown data size units in string: %s", size)
}
