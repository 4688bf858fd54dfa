// Package config loads and saves the build settings.
//
// Settings live in a TOML file with one table per concern:
//
//	[paths]
//	wz = "wz"
//	dist = "dist"
//	output_file = "bgm.json"
//
//	[feeds]
//	build_url = "https://maple-pod.github.io/bgm/build.json"
//	catalog_url = "https://raw.githubusercontent.com/maplestory-music/maplebgm-db/prod/bgm.min.json"
//	user_agent = "maplebgm-data"
//	timeout_seconds = 60
//
//	[archive]
//	string_archive = "String.wz"
//	map_name_image = "Map.img"
//	map_archive = "Map002.wz"
//	map_dir = "Map"
//	map_dir_prefix = "Map"
//	image_suffix = ".img"
//	info_node = "info"
//	bgm_node = "bgm"
//
//	[fanout]
//	location_regions = 0  # 0 = unbounded
//	location_maps = 0
//	assignment_dirs = 1   # 1 = sequential
//	assignment_files = 0
//
//	[log]
//	level = "info"
//	format = "console"
//	file = ""
//
// Missing keys keep their defaults, and a missing file is the same as an
// empty one.
//
// Example usage:
//
//	settings, err := config.Load("maplebgm.toml")
//	if err != nil {
//	    return err
//	}
//	extractor := extract.NewLocationExtractor(settings.ToLocationConfig())
package config
