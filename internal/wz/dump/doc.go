// Package dump reads archives that were exported to JSON into the wz node
// model.
//
// An exported archive is a directory on a billy filesystem. Its
// sub-directories are archive directories and every "<entry>.json" file is an
// image entry called "<entry>":
//
//	wz/
//	  String.wz/
//	    Map.img.json
//	  Map002.wz/
//	    Map/
//	      Map1/
//	        100000000.img.json
//
// Each image file holds one node object:
//
//	{"name": "100000000.img", "type": "property", "children": [
//	    {"name": "info", "type": "property", "children": [
//	        {"name": "bgm", "type": "string", "value": "Bgm00/FloralLife"}
//	    ]}
//	]}
//
// Objects with children (or of type "property" or "image") become lazily
// expanded wz.Image nodes; everything else is a wz.Leaf holding "value".
package dump
