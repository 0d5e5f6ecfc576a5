package catalog

// Products is the reference catalogue, in featured order.
var Products = []Product{
	{
		Slug:     "tablier-plombe-premium",
		Title:    Text{FR: "Tablier plombé Premium", EN: "Premium lead apron"},
		Summary:  Text{FR: "Tablier enveloppant à fermeture velcro pour les interventions longues.", EN: "Wrap-around apron with hook-and-loop closure for long procedures."},
		Category: CategoryAprons,
		Variants: []Variant{
			{Lead: Lead025, Sizes: []Size{SizeS, SizeM, SizeL, SizeXL}, TechSheetKey: "datasheets/tablier-premium-025.pdf"},
			{Lead: Lead035, Sizes: []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL}, TechSheetKey: "datasheets/tablier-premium-035.pdf"},
			{Lead: Lead050, Sizes: []Size{SizeM, SizeL, SizeXL}, TechSheetKey: "datasheets/tablier-premium-050.pdf"},
		},
		DefaultSize: SizeM,
		Specs: []Spec{
			{Label: Text{FR: "Matériau", EN: "Material"}, Value: Text{FR: "Composite sans plomb bismuth/antimoine", EN: "Lead-free bismuth/antimony composite"}},
			{Label: Text{FR: "Norme", EN: "Standard"}, Value: Text{FR: "IEC 61331-3:2014", EN: "IEC 61331-3:2014"}},
		},
		Highlights: []Text{
			{FR: "Répartition du poids sur les épaules et les hanches", EN: "Weight spread across shoulders and hips"},
			{FR: "Housse lavable", EN: "Washable cover"},
		},
		Image: "/static/img/products/tablier-premium.webp",
	},
	{
		Slug:     "tablier-plombe-leger",
		Title:    Text{FR: "Tablier plombé Léger", EN: "Lightweight lead apron"},
		Summary:  Text{FR: "Tablier frontal allégé pour les actes courts.", EN: "Lightweight frontal apron for short procedures."},
		Category: CategoryAprons,
		Variants: []Variant{
			{Lead: Lead025, Sizes: []Size{SizeXS, SizeS, SizeM, SizeL}, TechSheetKey: "datasheets/tablier-leger-025.pdf"},
			{Lead: Lead035, Sizes: []Size{SizeS, SizeM, SizeL}},
		},
		DefaultSize: SizeS,
		Specs: []Spec{
			{Label: Text{FR: "Poids (taille M, 0,25)", EN: "Weight (size M, 0.25)"}, Value: Text{FR: "2,9 kg", EN: "2.9 kg"}},
		},
		Image: "/static/img/products/tablier-leger.webp",
	},
	{
		Slug:     "jupe-gilet-plombes",
		Title:    Text{FR: "Ensemble jupe et gilet plombés", EN: "Lead skirt and vest set"},
		Summary:  Text{FR: "Protection deux pièces pour une meilleure mobilité.", EN: "Two-piece protection for better mobility."},
		Category: CategoryAprons,
		Variants: []Variant{
			{Lead: Lead035, Sizes: []Size{SizeS, SizeM, SizeL, SizeXL}, TechSheetKey: "datasheets/jupe-gilet-035.pdf"},
			{Lead: Lead050, Sizes: []Size{SizeM, SizeL, SizeXL, SizeXXL}, TechSheetKey: "datasheets/jupe-gilet-050.pdf"},
		},
		Image: "/static/img/products/jupe-gilet.webp",
	},
	{
		Slug:     "protege-thyroide",
		Title:    Text{FR: "Protège-thyroïde", EN: "Thyroid shield"},
		Summary:  Text{FR: "Collerette de protection de la thyroïde.", EN: "Thyroid protection collar."},
		Category: CategoryThyroidShields,
		Variants: []Variant{
			{Lead: Lead050, Sizes: []Size{SizeS, SizeM, SizeL}, TechSheetKey: "datasheets/thyroide-050.pdf"},
		},
		DefaultSize: SizeM,
		Image:       "/static/img/products/thyroide.webp",
	},
	{
		Slug:     "lunettes-plombees",
		Title:    Text{FR: "Lunettes plombées", EN: "Lead glasses"},
		Summary:  Text{FR: "Lunettes enveloppantes avec protection latérale.", EN: "Wrap-around glasses with side shields."},
		Category: CategoryGlasses,
		Variants: []Variant{
			{Lead: Lead050, Sizes: []Size{SizeM}, TechSheetKey: "datasheets/lunettes-050.pdf"},
		},
		Image: "/static/img/products/lunettes.webp",
	},
	{
		Slug:     "calot-plombe",
		Title:    Text{FR: "Calot plombé", EN: "Lead cap"},
		Summary:  Text{FR: "Calot de protection crânienne pour la radiologie interventionnelle.", EN: "Head protection cap for interventional radiology."},
		Category: CategoryCaps,
		Variants: []Variant{
			{Lead: Lead025, Sizes: []Size{SizeS, SizeM, SizeL}},
			{Lead: Lead050, Sizes: []Size{SizeM, SizeL}},
		},
		Image: "/static/img/products/calot.webp",
	},
	{
		Slug:     "gants-radioattenuants",
		Title:    Text{FR: "Gants radio-atténuants", EN: "Radiation attenuating gloves"},
		Summary:  Text{FR: "Gants stériles à usage unique.", EN: "Sterile single-use gloves."},
		Category: CategoryGloves,
		Variants: []Variant{
			{Lead: Lead025, Sizes: []Size{SizeS, SizeM, SizeL, SizeXL}, TechSheetKey: "datasheets/gants-025.pdf"},
		},
		DefaultSize: SizeM,
		Image:       "/static/img/products/gants.webp",
	},
	{
		Slug:     "paravent-mobile",
		Title:    Text{FR: "Paravent plombé mobile", EN: "Mobile lead screen"},
		Summary:  Text{FR: "Écran mobile sur roulettes avec hublot plombé.", EN: "Mobile screen on casters with a leaded window."},
		Category: CategoryScreens,
		Variants: []Variant{
			{Lead: Lead050, Sizes: []Size{SizeL, SizeXL}, TechSheetKey: "datasheets/paravent-050.pdf"},
		},
		Image: "/static/img/products/paravent.webp",
	},
}
