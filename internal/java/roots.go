package java

// Vendor directories under Program Files, scanned two levels deep
var windowsVendorDirs = [][]string{
	{"Program Files", "Java"},
	{"Program Files (x86)", "Java"},
	{"Program Files", "Eclipse Adoptium"},
	{"Program Files", "AdoptOpenJDK"},
	{"Program Files", "Zulu"},
	{"Program Files", "BellSoft"},
	{"Program Files", "Amazon Corretto"},
	{"Program Files", "Microsoft"},
	{"Program Files", "Common Files", "Oracle", "Java", "javapath"},
	{"Program Files", "GraalVM"},
}

// Top-level folders people unpack JDKs into by hand
var windowsManualDirs = []string{"Java", "java", "jdk", "jre"}

// Top-level game library folders that may hold bundled runtimes
var windowsGameDirs = []string{"Game", "Games", "game", "games"}

func windowsDriveRoots(conv Conventions, drives []string) (install, keyword []Root) {
	for _, drive := range drives {
		for _, parts := range windowsVendorDirs {
			install = append(install, Root{
				Path:     conv.Join(append([]string{drive}, parts...)...),
				Strategy: DirectScan,
				Depth:    2,
			})
		}
		for _, name := range windowsManualDirs {
			install = append(install, Root{Path: conv.Join(drive, name), Strategy: DirectScan, Depth: 3})
		}
		for _, name := range windowsGameDirs {
			keyword = append(keyword, Root{Path: conv.Join(drive, name), Strategy: KeywordScan, Depth: 4})
		}
	}
	return install, keyword
}

func windowsUserRoots(conv Conventions, getenv func(string) string) []Root {
	var roots []Root

	if profile := getenv("USERPROFILE"); profile != "" {
		for _, parts := range [][]string{
			{"AppData", "Roaming", ".minecraft", "runtime"},
			{"scoop", "apps"},
			{".jdks"},
			{".gradle", "jdks"},
			{".sdkman", "candidates", "java"},
			{"AppData", "Local", "Programs"},
		} {
			roots = append(roots, Root{
				Path:     conv.Join(append([]string{profile}, parts...)...),
				Strategy: DirectScan,
				Depth:    4,
			})
		}
	}

	if appData := getenv("APPDATA"); appData != "" {
		roots = append(roots,
			Root{Path: conv.Join(appData, "..", "Roaming", ".minecraft", "runtime"), Strategy: DirectScan, Depth: 4},
			Root{Path: conv.Join(appData, ".minecraft", "runtime"), Strategy: DirectScan, Depth: 4},
		)
	}

	return roots
}

func unixInstallRoots(conv Conventions) []Root {
	return []Root{
		{Path: conv.Join("/usr", "lib", "jvm"), Strategy: DirectScan, Depth: 3},
		{Path: conv.Join("/usr", "local", "lib", "jvm"), Strategy: DirectScan, Depth: 3},
		{Path: conv.Join("/Library", "Java", "JavaVirtualMachines"), Strategy: DirectScan, Depth: 3},
	}
}

func unixUserRoots(conv Conventions, getenv func(string) string) []Root {
	home := getenv("HOME")
	if home == "" {
		return nil
	}
	return []Root{
		{Path: conv.Join(home, ".jdks"), Strategy: DirectScan, Depth: 3},
		{Path: conv.Join(home, ".sdkman", "candidates", "java"), Strategy: DirectScan, Depth: 3},
		{Path: conv.Join(home, ".gradle", "jdks"), Strategy: DirectScan, Depth: 3},
	}
}
