package palette

// rgb8 builds an opaque RGBA from 8-bit components.
func rgb8(r, g, b uint8) RGBA {
	return FromBytes(r, g, b, 255)
}

// cssColors contains the named colors defined in the CSS spec.
var cssColors = map[string]RGBA{
	"aliceblue":           rgb8(0xf0, 0xf8, 0xff),
	"antiquewhite":        rgb8(0xfa, 0xeb, 0xd7),
	"aqua":                rgb8(0x00, 0xff, 0xff),
	"aquamarine":          rgb8(0x7f, 0xff, 0xd4),
	"azure":               rgb8(0xf0, 0xff, 0xff),
	"beige":               rgb8(0xf5, 0xf5, 0xdc),
	"bisque":              rgb8(0xff, 0xe4, 0xc4),
	"black":               rgb8(0x00, 0x00, 0x00),
	"blanchedalmond":      rgb8(0xff, 0xeb, 0xcd),
	"blue":                rgb8(0x00, 0x00, 0xff),
	"blueviolet":          rgb8(0x8a, 0x2b, 0xe2),
	"brown":               rgb8(0xa5, 0x2a, 0x2a),
	"burlywood":           rgb8(0xde, 0xb8, 0x87),
	"cadetblue":           rgb8(0x5f, 0x9e, 0xa0),
	"chartreuse":          rgb8(0x7f, 0xff, 0x00),
	"chocolate":           rgb8(0xd2, 0x69, 0x1e),
	"coral":               rgb8(0xff, 0x7f, 0x50),
	"cornflowerblue":      rgb8(0x64, 0x95, 0xed),
	"cornsilk":            rgb8(0xff, 0xf8, 0xdc),
	"crimson":             rgb8(0xdc, 0x14, 0x3c),
	"cyan":                rgb8(0x00, 0xff, 0xff),
	"darkblue":            rgb8(0x00, 0x00, 0x8b),
	"darkcyan":            rgb8(0x00, 0x8b, 0x8b),
	"darkgoldenrod":       rgb8(0xb8, 0x86, 0x0b),
	"darkgray":            rgb8(0xa9, 0xa9, 0xa9),
	"darkgreen":           rgb8(0x00, 0x64, 0x00),
	"darkgrey":            rgb8(0xa9, 0xa9, 0xa9),
	"darkkhaki":           rgb8(0xbd, 0xb7, 0x6b),
	"darkmagenta":         rgb8(0x8b, 0x00, 0x8b),
	"darkolivegreen":      rgb8(0x55, 0x6b, 0x2f),
	"darkorange":          rgb8(0xff, 0x8c, 0x00),
	"darkorchid":          rgb8(0x99, 0x32, 0xcc),
	"darkred":             rgb8(0x8b, 0x00, 0x00),
	"darksalmon":          rgb8(0xe9, 0x96, 0x7a),
	"darkseagreen":        rgb8(0x8f, 0xbc, 0x8f),
	"darkslateblue":       rgb8(0x48, 0x3d, 0x8b),
	"darkslategray":       rgb8(0x2f, 0x4f, 0x4f),
	"darkslategrey":       rgb8(0x2f, 0x4f, 0x4f),
	"darkturquoise":       rgb8(0x00, 0xce, 0xd1),
	"darkviolet":          rgb8(0x94, 0x00, 0xd3),
	"deeppink":            rgb8(0xff, 0x14, 0x93),
	"deepskyblue":         rgb8(0x00, 0xbf, 0xff),
	"dimgray":             rgb8(0x69, 0x69, 0x69),
	"dimgrey":             rgb8(0x69, 0x69, 0x69),
	"dodgerblue":          rgb8(0x1e, 0x90, 0xff),
	"firebrick":           rgb8(0xb2, 0x22, 0x22),
	"floralwhite":         rgb8(0xff, 0xfa, 0xf0),
	"forestgreen":         rgb8(0x22, 0x8b, 0x22),
	"fuchsia":             rgb8(0xff, 0x00, 0xff),
	"gainsboro":           rgb8(0xdc, 0xdc, 0xdc),
	"ghostwhite":          rgb8(0xf8, 0xf8, 0xff),
	"gold":                rgb8(0xff, 0xd7, 0x00),
	"goldenrod":           rgb8(0xda, 0xa5, 0x20),
	"gray":                rgb8(0x80, 0x80, 0x80),
	"green":               rgb8(0x00, 0x80, 0x00),
	"greenyellow":         rgb8(0xad, 0xff, 0x2f),
	"grey":                rgb8(0x80, 0x80, 0x80),
	"honeydew":            rgb8(0xf0, 0xff, 0xf0),
	"hotpink":             rgb8(0xff, 0x69, 0xb4),
	"indianred":           rgb8(0xcd, 0x5c, 0x5c),
	"indigo":              rgb8(0x4b, 0x00, 0x82),
	"ivory":               rgb8(0xff, 0xff, 0xf0),
	"khaki":               rgb8(0xf0, 0xe6, 0x8c),
	"lavender":            rgb8(0xe6, 0xe6, 0xfa),
	"lavenderblush":       rgb8(0xff, 0xf0, 0xf5),
	"lawngreen":           rgb8(0x7c, 0xfc, 0x00),
	"lemonchiffon":        rgb8(0xff, 0xfa, 0xcd),
	"lightblue":           rgb8(0xad, 0xd8, 0xe6),
	"lightcoral":          rgb8(0xf0, 0x80, 0x80),
	"lightcyan":           rgb8(0xe0, 0xff, 0xff),
	"lightgoldenrodyellow":rgb8(0xfa, 0xfa, 0xd2),
	"lightgray":           rgb8(0xd3, 0xd3, 0xd3),
	"lightgreen":          rgb8(0x90, 0xee, 0x90),
	"lightgrey":           rgb8(0xd3, 0xd3, 0xd3),
	"lightpink":           rgb8(0xff, 0xb6, 0xc1),
	"lightsalmon":         rgb8(0xff, 0xa0, 0x7a),
	"lightseagreen":       rgb8(0x20, 0xb2, 0xaa),
	"lightskyblue":        rgb8(0x87, 0xce, 0xfa),
	"lightslategray":      rgb8(0x77, 0x88, 0x99),
	"lightslategrey":      rgb8(0x77, 0x88, 0x99),
	"lightsteelblue":      rgb8(0xb0, 0xc4, 0xde),
	"lightyellow":         rgb8(0xff, 0xff, 0xe0),
	"lime":                rgb8(0x00, 0xff, 0x00),
	"limegreen":           rgb8(0x32, 0xcd, 0x32),
	"linen":               rgb8(0xfa, 0xf0, 0xe6),
	"magenta":             rgb8(0xff, 0x00, 0xff),
	"maroon":              rgb8(0x80, 0x00, 0x00),
	"mediumaquamarine":    rgb8(0x66, 0xcd, 0xaa),
	"mediumblue":          rgb8(0x00, 0x00, 0xcd),
	"mediumorchid":        rgb8(0xba, 0x55, 0xd3),
	"mediumpurple":        rgb8(0x93, 0x70, 0xdb),
	"mediumseagreen":      rgb8(0x3c, 0xb3, 0x71),
	"mediumslateblue":     rgb8(0x7b, 0x68, 0xee),
	"mediumspringgreen":   rgb8(0x00, 0xfa, 0x9a),
	"mediumturquoise":     rgb8(0x48, 0xd1, 0xcc),
	"mediumvioletred":     rgb8(0xc7, 0x15, 0x85),
	"midnightblue":        rgb8(0x19, 0x19, 0x70),
	"mintcream":           rgb8(0xf5, 0xff, 0xfa),
	"mistyrose":           rgb8(0xff, 0xe4, 0xe1),
	"moccasin":            rgb8(0xff, 0xe4, 0xb5),
	"navajowhite":         rgb8(0xff, 0xde, 0xad),
	"navy":                rgb8(0x00, 0x00, 0x80),
	"oldlace":             rgb8(0xfd, 0xf5, 0xe6),
	"olive":               rgb8(0x80, 0x80, 0x00),
	"olivedrab":           rgb8(0x6b, 0x8e, 0x23),
	"orange":              rgb8(0xff, 0xa5, 0x00),
	"orangered":           rgb8(0xff, 0x45, 0x00),
	"orchid":              rgb8(0xda, 0x70, 0xd6),
	"palegoldenrod":       rgb8(0xee, 0xe8, 0xaa),
	"palegreen":           rgb8(0x98, 0xfb, 0x98),
	"paleturquoise":       rgb8(0xaf, 0xee, 0xee),
	"palevioletred":       rgb8(0xdb, 0x70, 0x93),
	"papayawhip":          rgb8(0xff, 0xef, 0xd5),
	"peachpuff":           rgb8(0xff, 0xda, 0xb9),
	"peru":                rgb8(0xcd, 0x85, 0x3f),
	"pink":                rgb8(0xff, 0xc0, 0xcb),
	"plum":                rgb8(0xdd, 0xa0, 0xdd),
	"powderblue":          rgb8(0xb0, 0xe0, 0xe6),
	"purple":              rgb8(0x80, 0x00, 0x80),
	"rebeccapurple":       rgb8(0x66, 0x33, 0x99),
	"red":                 rgb8(0xff, 0x00, 0x00),
	"rosybrown":           rgb8(0xbc, 0x8f, 0x8f),
	"royalblue":           rgb8(0x41, 0x69, 0xe1),
	"saddlebrown":         rgb8(0x8b, 0x45, 0x13),
	"salmon":              rgb8(0xfa, 0x80, 0x72),
	"sandybrown":          rgb8(0xf4, 0xa4, 0x60),
	"seagreen":            rgb8(0x2e, 0x8b, 0x57),
	"seashell":            rgb8(0xff, 0xf5, 0xee),
	"sienna":              rgb8(0xa0, 0x52, 0x2d),
	"silver":              rgb8(0xc0, 0xc0, 0xc0),
	"skyblue":             rgb8(0x87, 0xce, 0xeb),
	"slateblue":           rgb8(0x6a, 0x5a, 0xcd),
	"slategray":           rgb8(0x70, 0x80, 0x90),
	"slategrey":           rgb8(0x70, 0x80, 0x90),
	"snow":                rgb8(0xff, 0xfa, 0xfa),
	"springgreen":         rgb8(0x00, 0xff, 0x7f),
	"steelblue":           rgb8(0x46, 0x82, 0xb4),
	"tan":                 rgb8(0xd2, 0xb4, 0x8c),
	"teal":                rgb8(0x00, 0x80, 0x80),
	"thistle":             rgb8(0xd8, 0xbf, 0xd8),
	"tomato":              rgb8(0xff, 0x63, 0x47),
	"turquoise":           rgb8(0x40, 0xe0, 0xd0),
	"violet":              rgb8(0xee, 0x82, 0xee),
	"wheat":               rgb8(0xf5, 0xde, 0xb3),
	"white":               rgb8(0xff, 0xff, 0xff),
	"whitesmoke":          rgb8(0xf5, 0xf5, 0xf5),
	"yellow":              rgb8(0xff, 0xff, 0x00),
	"yellowgreen":         rgb8(0x9a, 0xcd, 0x32),
}

// toolkitColors contains the classic visualization-toolkit color names
// that predate the CSS set. Segmentation scene manifests use these for
// organic tissue (skin as "flesh", liver as "raw sienna", ...).
var toolkitColors = map[string]RGBA{
	"alizarincrimson": rgb8(0xe3, 0x26, 0x36),
	"banana":          rgb8(0xe3, 0xcf, 0x57),
	"carrot":          rgb8(0xed, 0x91, 0x21),
	"coldgrey":        rgb8(0x80, 0x8a, 0x87),
	"eggshell":        rgb8(0xfc, 0xe6, 0xc9),
	"flesh":           rgb8(0xff, 0x7d, 0x40),
	"mint":            rgb8(0xbd, 0xfc, 0xc9),
	"peacock":         rgb8(0x33, 0xa1, 0xc9),
	"rawsienna":       rgb8(0xc7, 0x61, 0x14),
	"warmgrey":        rgb8(0x80, 0x80, 0x69),
}
