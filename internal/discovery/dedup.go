package discovery

import "github.com/jsphonorio/ControllerTools/internal/hidsrc"

// dedupAdjacentBySerial collapses consecutive records sharing a serial
// number, keeping the first of each run. HID enumeration lists the
// interfaces of one physical device contiguously, so adjacent equality is
// the duplication signal; duplicates separated by another device are left
// alone on purpose.
func dedupAdjacentBySerial(records []hidsrc.Record) []hidsrc.Record {
	var out []hidsrc.Record
	for i, rec := range records {
		if i > 0 && rec.Serial == records[i-1].Serial {
			continue
		}
		out = append(out, rec)
	}
	return out
}
