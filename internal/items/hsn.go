package items

// GST percentages keyed by HSN code prefix. Entries may be 2, 4, 6 or 8
// digits; lookup tries the longest prefix first.
var hsnGSTTable = map[string]float64{
	"28":       18, // inorganic chemicals
	"280440":   5,  // medical grade oxygen
	"29":       18, // organic chemicals
	"2942":     18,
	"30":       12, // pharmaceutical products
	"3002":     5,
	"3822":     12, // diagnostic and laboratory reagents
	"38220090": 12,
	"39":       18, // plastics
	"3926":     18,
	"70":       18, // glass
	"7017":     18, // laboratory glassware
	"8413":     18, // pumps
	"90":       18, // instruments and apparatus
	"9027":     18, // analysis instruments
}

// LookupGST resolves an HSN code to its GST percentage by progressively
// shorter prefix match: 8, then 6, 4 and 2 digits. The boolean is false when
// no prefix is mapped.
func LookupGST(hsnCode string) (float64, bool) {
	for _, n := range []int{8, 6, 4, 2} {
		if len(hsnCode) < n {
			continue
		}
		if gst, ok := hsnGSTTable[hsnCode[:n]]; ok {
			return gst, true
		}
	}
	return 0, false
}
