package catalog

import "fmt"

// Check verifies that the tables agree with each other: codes are unique,
// every library has a compatibility entry, every compatibility entry names a
// catalogued library and only catalogued drives, and every drive has a
// media type.
func Check() error {
	seenLib := make(map[LibraryCode]bool)
	for _, lib := range libraries {
		if lib.Code == GenericLibrary {
			return fmt.Errorf("library %q uses the reserved generic code", lib.Name)
		}
		if seenLib[lib.Code] {
			return fmt.Errorf("duplicate library code 0x%02x", int(lib.Code))
		}
		seenLib[lib.Code] = true

		if _, ok := compatibility[lib.Code]; !ok {
			return fmt.Errorf("library %s has no compatible drives", lib)
		}
	}

	seenDrv := make(map[DriveCode]bool)
	for _, drv := range drives {
		if seenDrv[drv.Code] {
			return fmt.Errorf("duplicate drive code 0x%02x", int(drv.Code))
		}
		seenDrv[drv.Code] = true

		m, ok := driveMedia[drv.Code]
		if !ok {
			return fmt.Errorf("drive %s has no media type", drv)
		}
		if _, ok := mediaByCode[m]; !ok {
			return fmt.Errorf("drive %s maps to unknown media 0x%02x", drv, int(m))
		}
	}

	for code, drvs := range compatibility {
		if !seenLib[code] {
			return fmt.Errorf("compatibility entry for unknown library 0x%02x", int(code))
		}

		if len(drvs) == 0 {
			return fmt.Errorf("library 0x%02x lists no drives", int(code))
		}

		for _, d := range drvs {
			if !seenDrv[d] {
				return fmt.Errorf("library 0x%02x lists unknown drive 0x%02x", int(code), int(d))
			}
		}
	}

	return nil
}
