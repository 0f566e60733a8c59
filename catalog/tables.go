package catalog

var libraries = []Library{
	{"ADIC Scalar 24", 0x01},
	{"ADIC Scalar 100", 0x02},
	{"ADIC Scalar i2000", 0x03},
	{"HP StorageWorks ESL9000", 0x04},
	{"HP StorageWorks ESL E-Series", 0x05},
	{"HP StorageWorks EML E-Series", 0x06},
	{"IBM 3583 Ultrium Scalable Library", 0x07},
	{"IBM 3584 Ultra Scalable Library", 0x08},
	{"IBM System Storage TS3100", 0x09},
	{"HP StorageWorks MSL 2024/4048/8096", 0x0A},
	{"HP StorageWorks MSL 6000", 0x0B},
	{"Overland NEO 2000/4000/8000 Series", 0x0C},
}

var drives = []Drive{
	{"HP StorageWorks DLT VS80", 0x01},
	{"HP StorageWorks DLT VS160", 0x02},
	{"HP StorageWorks SDLT 220", 0x03},
	{"HP StorageWorks SDLT 320", 0x04},
	{"HP StorageWorks SDLT 600", 0x05},
	{"Quantum SDLT 220", 0x06},
	{"Quantum SDLT 320", 0x07},
	{"Quantum SDLT 600", 0x08},
	{"HP StorageWorks Ultrium 232", 0x09},
	{"HP StorageWorks Ultrium 448", 0x0A},
	{"HP StorageWorks Ultrium 460", 0x0B},
	{"HP StorageWorks Ultrium 960", 0x0C},
	{"HP StorageWorks Ultrium 1840", 0x0D},
	{"HP StorageWorks Ultrium 3280", 0x0E},
	{"HP StorageWorks Ultrium 6250", 0x0F},
	{"IBM 3580 Ultrium1", 0x10},
	{"IBM 3580 Ultrium2", 0x11},
	{"IBM 3580 Ultrium3", 0x12},
	{"IBM 3580 Ultrium4", 0x13},
	{"IBM 3580 Ultrium5", 0x14},
	{"IBM 3580 Ultrium6", 0x15},
}

const (
	MediaCleaning    MediaCode = 0x01
	MediaDiagnostics MediaCode = 0x02
	MediaDLT4        MediaCode = 0x03
	MediaVSTape      MediaCode = 0x04
	MediaSDLT1       MediaCode = 0x05
	MediaSDLT2       MediaCode = 0x06
	MediaSDLT3       MediaCode = 0x07
	MediaLTO1        MediaCode = 0x08
	MediaLTO2        MediaCode = 0x09
	MediaLTO3        MediaCode = 0x0A
	MediaLTO4        MediaCode = 0x0B
	MediaLTO5        MediaCode = 0x0C
	MediaLTO6        MediaCode = 0x0D
)

var media = []Media{
	{"Cleaning Cartridge", MediaCleaning},
	{"Diagnostics Cartridge", MediaDiagnostics},
	{"DLT IV 40GB", MediaDLT4},
	{"VSTape 80GB", MediaVSTape},
	{"SuperDLT I 110GB", MediaSDLT1},
	{"SuperDLT I 160GB", MediaSDLT2},
	{"SuperDLT II 300GB", MediaSDLT3},
	{"LTO 1 100GB", MediaLTO1},
	{"LTO 2 200GB", MediaLTO2},
	{"LTO 3 400GB", MediaLTO3},
	{"LTO 4 800GB", MediaLTO4},
	{"LTO 5 1500GB", MediaLTO5},
	{"LTO 6 2500GB", MediaLTO6},
}

// compatibility is keyed by library code; values are drive codes in the
// order the model's drive dropdown lists them.
var compatibility = map[LibraryCode][]DriveCode{
	0x01: {0x07, 0x10, 0x11},
	0x02: {0x07, 0x08, 0x10, 0x11, 0x12},
	0x03: {0x07, 0x08, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15},
	0x04: {0x06, 0x07, 0x09, 0x0B, 0x0C},
	0x05: {0x04, 0x05, 0x09, 0x0B, 0x0C, 0x0D},
	0x06: {0x0B, 0x0C, 0x0D},
	0x07: {0x10, 0x11, 0x12},
	0x08: {0x10, 0x11, 0x12, 0x13, 0x14, 0x15},
	0x09: {0x10, 0x11, 0x12, 0x13, 0x14},
	0x0A: {0x09, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F},
	0x0B: {0x09, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F},
	0x0C: {0x09, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F},
}

var driveMedia = map[DriveCode]MediaCode{
	0x01: MediaDLT4,
	0x02: MediaVSTape,
	0x03: MediaSDLT1,
	0x04: MediaSDLT2,
	0x05: MediaSDLT3,
	0x06: MediaSDLT1,
	0x07: MediaSDLT2,
	0x08: MediaSDLT3,
	0x09: MediaLTO1,
	0x0A: MediaLTO2,
	0x0B: MediaLTO2,
	0x0C: MediaLTO3,
	0x0D: MediaLTO4,
	0x0E: MediaLTO5,
	0x0F: MediaLTO6,
	0x10: MediaLTO1,
	0x11: MediaLTO2,
	0x12: MediaLTO3,
	0x13: MediaLTO4,
	0x14: MediaLTO5,
	0x15: MediaLTO6,
}
