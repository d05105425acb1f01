package catalog

import (
	"strconv"
	"strings"
)

// compareVersion orders dotted versions numerically per segment ("2.10" > "2.4").
// Non-numeric segments compare as strings.
func compareVersion(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y string
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}
		xi, errX := strconv.Atoi(x)
		yi, errY := strconv.Atoi(y)
		if x == "" {
			xi, errX = 0, nil
		}
		if y == "" {
			yi, errY = 0, nil
		}
		if errX == nil && errY == nil {
			if xi != yi {
				if xi < yi {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}
