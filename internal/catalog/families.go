package catalog

// Families is the full configurator catalog. Prix et bornes issus de la grille
// tarifaire atelier 2026; dimensions en centimètres.
var Families = []FamilyConfig{
	{
		Slug:      "garde-corps",
		Nom:       "Garde-corps",
		BasePrice: 290,
		Dimensions: map[string]DimensionRange{
			"width":  {Min: 100, Max: 1000, Default: 350, Step: 10},
			"height": {Min: 80, Max: 250, Default: 180, Step: 5},
		},
		Materials: []Material{
			{ID: "acier-brut", Label: "Acier brut", Multiplier: 1.0},
			{ID: "acier-thermolaque", Label: "Acier thermolaqué", Multiplier: 1.2},
			{ID: "aluminium", Label: "Aluminium", Multiplier: 1.4},
			{ID: "inox-316", Label: "Inox 316 brossé", Multiplier: 1.8},
		},
		Styles: []Style{
			{ID: "barreaudage-vertical", Label: "Barreaudage vertical", Multiplier: 1.0},
			{ID: "lisses-horizontales", Label: "Lisses horizontales", Multiplier: 1.1},
			{ID: "tole-perforee", Label: "Tôle perforée", Multiplier: 1.25},
			{ID: "cables-inox", Label: "Câbles inox", Multiplier: 1.3},
		},
		Options: []Option{
			{ID: "kit-fixation-beton", Label: "Kit de fixation béton", Price: 50, Visible3D: false},
			{ID: "main-courante-bois", Label: "Main courante bois", Price: 120, Visible3D: true},
			{ID: "eclairage-led", Label: "Éclairage LED intégré", Price: 240, Visible3D: true},
		},
		Colors: standardColors,
	},
	{
		Slug:      "escalier",
		Nom:       "Escalier",
		BasePrice: 1850,
		Dimensions: map[string]DimensionRange{
			"width":  {Min: 60, Max: 160, Default: 90, Step: 5},
			"height": {Min: 200, Max: 400, Default: 280, Step: 5},
			"depth":  {Min: 150, Max: 500, Default: 300, Step: 10},
		},
		Materials: []Material{
			{ID: "acier-brut", Label: "Acier brut", Multiplier: 1.0},
			{ID: "acier-thermolaque", Label: "Acier thermolaqué", Multiplier: 1.15},
			{ID: "acier-corten", Label: "Acier corten", Multiplier: 1.35},
		},
		Styles: []Style{
			{ID: "droit", Label: "Droit", Multiplier: 1.0},
			{ID: "quart-tournant", Label: "Quart tournant", Multiplier: 1.2},
			{ID: "helicoidal", Label: "Hélicoïdal", Multiplier: 1.6},
		},
		Options: []Option{
			{ID: "marches-chene", Label: "Marches en chêne massif", Price: 680, Visible3D: true},
			{ID: "contremarches", Label: "Contremarches pleines", Price: 320, Visible3D: true},
			{ID: "limon-central", Label: "Limon central", Price: 450, Visible3D: true},
		},
		Colors: standardColors,
	},
	{
		Slug:      "portail",
		Nom:       "Portail",
		BasePrice: 1200,
		Dimensions: map[string]DimensionRange{
			"width":  {Min: 250, Max: 500, Default: 350, Step: 10},
			"height": {Min: 100, Max: 220, Default: 160, Step: 5},
		},
		Materials: []Material{
			{ID: "acier-brut", Label: "Acier brut", Multiplier: 1.0},
			{ID: "acier-thermolaque", Label: "Acier thermolaqué", Multiplier: 1.2},
			{ID: "aluminium", Label: "Aluminium", Multiplier: 1.5},
		},
		Styles: []Style{
			{ID: "battant", Label: "Battant 2 vantaux", Multiplier: 1.0},
			{ID: "coulissant", Label: "Coulissant", Multiplier: 1.25},
			{ID: "ajoure", Label: "Ajouré contemporain", Multiplier: 1.15},
		},
		Options: []Option{
			{ID: "motorisation", Label: "Motorisation", Price: 890, Visible3D: false},
			{ID: "portillon", Label: "Portillon intégré", Price: 540, Visible3D: true},
			{ID: "interphone", Label: "Pré-câblage interphone", Price: 150, Visible3D: false},
		},
		Colors: standardColors,
	},
	{
		Slug:      "verriere",
		Nom:       "Verrière",
		BasePrice: 750,
		Dimensions: map[string]DimensionRange{
			"width":  {Min: 80, Max: 400, Default: 150, Step: 5},
			"height": {Min: 60, Max: 250, Default: 120, Step: 5},
		},
		Materials: []Material{
			{ID: "acier-brut", Label: "Acier brut", Multiplier: 1.0},
			{ID: "acier-thermolaque", Label: "Acier thermolaqué", Multiplier: 1.15},
		},
		Styles: []Style{
			{ID: "atelier", Label: "Style atelier", Multiplier: 1.0},
			{ID: "soubassement", Label: "Avec soubassement", Multiplier: 1.15},
			{ID: "porte-integree", Label: "Porte intégrée", Multiplier: 1.4},
		},
		Options: []Option{
			{ID: "vitrage-feuillete", Label: "Vitrage feuilleté 44.2", Price: 180, Visible3D: false},
			{ID: "vitrage-depoli", Label: "Vitrage dépoli", Price: 220, Visible3D: true},
			{ID: "imposte", Label: "Imposte vitrée", Price: 260, Visible3D: true},
		},
		Colors: standardColors,
	},
	{
		Slug:      "porte",
		Nom:       "Porte métallique",
		BasePrice: 980,
		Dimensions: map[string]DimensionRange{
			"width":  {Min: 70, Max: 180, Default: 90, Step: 1},
			"height": {Min: 190, Max: 260, Default: 215, Step: 1},
		},
		Materials: []Material{
			{ID: "acier-brut", Label: "Acier brut", Multiplier: 1.0},
			{ID: "acier-thermolaque", Label: "Acier thermolaqué", Multiplier: 1.2},
			{ID: "acier-corten", Label: "Acier corten", Multiplier: 1.4},
		},
		Styles: []Style{
			{ID: "pleine", Label: "Pleine", Multiplier: 1.0},
			{ID: "semi-vitree", Label: "Semi-vitrée", Multiplier: 1.2},
			{ID: "double-vantail", Label: "Double vantail", Multiplier: 1.7},
		},
		Options: []Option{
			{ID: "serrure-3-points", Label: "Serrure 3 points", Price: 210, Visible3D: false},
			{ID: "oculus", Label: "Oculus rond", Price: 160, Visible3D: true},
			{ID: "barre-tirage", Label: "Barre de tirage inox", Price: 140, Visible3D: true},
		},
		Colors: standardColors,
	},
}

// Teintes thermolaquage proposées sur toutes les familles.
var standardColors = []Color{
	{ID: "noir-fonce", Label: "Noir foncé", RAL: "RAL 9005", Hex: "#0a0a0a"},
	{ID: "gris-anthracite", Label: "Gris anthracite", RAL: "RAL 7016", Hex: "#383e42"},
	{ID: "gris-clair", Label: "Gris clair", RAL: "RAL 7035", Hex: "#d7d7d7"},
	{ID: "blanc-pur", Label: "Blanc pur", RAL: "RAL 9010", Hex: "#f1ece1"},
	{ID: "rouge-basque", Label: "Rouge basque", RAL: "RAL 3004", Hex: "#6b1c23"},
	{ID: "vert-mousse", Label: "Vert mousse", RAL: "RAL 6005", Hex: "#0f4336"},
	{ID: "bleu-acier", Label: "Bleu acier", RAL: "RAL 5011", Hex: "#1a2b3c"},
}
