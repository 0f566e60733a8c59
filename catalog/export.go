package catalog

// Compatibility is one library model with the drive models it accepts.
type Compatibility struct {
	Library string      `json:"library" yaml:"library"`
	Code    LibraryCode `json:"code" yaml:"code"`
	Drives  []Drive     `json:"drives" yaml:"drives"`
}

// DriveMedia pairs a drive model with its cartridge type.
type DriveMedia struct {
	Drive DriveCode `json:"drive" yaml:"drive"`
	Media MediaCode `json:"media" yaml:"media"`
}

// Document is the whole catalog in a form suitable for export.
type Document struct {
	Version       int             `json:"version" yaml:"version"`
	MaxDrives     int             `json:"max_drives" yaml:"max_drives"`
	Libraries     []Library       `json:"libraries" yaml:"libraries"`
	Drives        []Drive         `json:"drives" yaml:"drives"`
	Media         []Media         `json:"media" yaml:"media"`
	Compatibility []Compatibility `json:"compatibility" yaml:"compatibility"`
	DriveMedia    []DriveMedia    `json:"drive_media" yaml:"drive_media"`
}

// Export returns the catalog, with relations listed in catalog order.
func Export() *Document {
	doc := &Document{
		Version:   Version,
		MaxDrives: MaxDrives,
		Libraries: Libraries(),
		Drives:    Drives(),
		Media:     MediaTypes(),
	}

	for _, lib := range libraries {
		doc.Compatibility = append(doc.Compatibility, Compatibility{
			Library: lib.Name,
			Code:    lib.Code,
			Drives:  CompatibleDrives(lib.Code),
		})
	}

	for _, drv := range drives {
		if m, ok := driveMedia[drv.Code]; ok {
			doc.DriveMedia = append(doc.DriveMedia, DriveMedia{Drive: drv.Code, Media: m})
		}
	}

	return doc
}
