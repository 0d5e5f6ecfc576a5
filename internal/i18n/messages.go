package i18n

var messages = map[string]map[string]string{
	FR: {
		"site.name":     "RadShield",
		"site.tagline":  "Équipements de radioprotection pour l'imagerie médicale",
		"footer.rights": "Tous droits réservés.",

		"nav.home":     "Accueil",
		"nav.products": "Produits",
		"nav.services": "Services",
		"nav.about":    "À propos",
		"nav.contact":  "Contact",
		"nav.quote":    "Demander un devis",
		"nav.legal":    "Mentions légales",
		"nav.privacy":  "Confidentialité",
		"nav.language": "English",

		"home.title":        "Protéger ceux qui soignent",
		"home.lead":         "Tabliers plombés, protège-thyroïdes, lunettes et paravents pour les services de radiologie, de bloc et de cardiologie interventionnelle.",
		"home.cta_products": "Voir le catalogue",
		"home.cta_quote":    "Obtenir un devis",
		"home.featured":     "Produits phares",

		"about.title": "À propos",
		"about.body":  "Nous accompagnons les établissements de santé dans le choix, l'entretien et le contrôle de leurs équipements de radioprotection.",

		"services.title": "Nos services",
		"services.lead":  "Achat, location, contrôle qualité et nettoyage de vos équipements de protection.",

		"legal.title":   "Mentions légales",
		"legal.body":    "Éditeur du site : RadShield SAS. Hébergement : Union européenne.",
		"privacy.title": "Politique de confidentialité",
		"privacy.body":  "Les données saisies dans les formulaires servent uniquement à répondre à votre demande. Elles ne sont pas conservées par ce site.",

		"products.title":           "Catalogue",
		"products.lead":            "Filtrez par catégorie, équivalence plomb ou taille.",
		"products.filter.category": "Catégorie",
		"products.filter.lead":     "Équivalence plomb",
		"products.filter.size":     "Taille",
		"products.filter.query":    "Rechercher",
		"products.filter.all":      "Toutes",
		"products.filter.apply":    "Filtrer",
		"products.sort":            "Trier par",
		"products.empty":           "Aucun produit ne correspond à ces critères.",
		"products.count":           "%d produit(s)",

		"sort.featured":   "Mise en avant",
		"sort.title-asc":  "Nom (A-Z)",
		"sort.title-desc": "Nom (Z-A)",
		"sort.variants":   "Nombre d'équivalences",

		"category.aprons":          "Tabliers",
		"category.thyroid-shields": "Protège-thyroïdes",
		"category.glasses":         "Lunettes",
		"category.caps":            "Calots",
		"category.gloves":          "Gants",
		"category.screens":         "Paravents",

		"product.lead":       "Équivalence plomb",
		"product.size":       "Taille",
		"product.choose":     "Choisir",
		"product.datasheet":  "Fiche technique",
		"product.quote_cta":  "Demander un devis pour cette configuration",
		"product.specs":      "Caractéristiques",
		"product.highlights": "Points forts",
		"product.variants":   "%d équivalence(s) disponible(s)",
		"product.not_found":  "Produit introuvable.",

		"need.purchase":             "Achat",
		"need.purchase.hint":        "Équiper un service avec du matériel neuf.",
		"need.rental":               "Location",
		"need.rental.hint":          "Renforcer un parc ponctuellement ou pendant des travaux.",
		"need.quality-control":      "Contrôle qualité",
		"need.quality-control.hint": "Contrôle radioscopique annuel des équipements.",
		"need.cleaning":             "Nettoyage",
		"need.cleaning.hint":        "Nettoyage et désinfection des tabliers.",
		"need.mixed":                "Besoin mixte",
		"need.mixed.hint":           "Plusieurs prestations combinées.",

		"stage.need":      "Besoin",
		"stage.details":   "Détails",
		"stage.logistics": "Logistique",
		"stage.company":   "Société",
		"stage.review":    "Récapitulatif",

		"field.needs":    "Besoins",
		"field.product":  "Produit",
		"field.pb":       "Équivalence plomb",
		"field.size":     "Taille",
		"field.quantity": "Quantité",
		"field.notes":    "Remarques",
		"field.address":  "Adresse de livraison",
		"field.deadline": "Date souhaitée",
		"field.company":  "Société",
		"field.contact":  "Nom du contact",
		"field.email":    "E-mail",
		"field.phone":    "Téléphone",
		"field.none":     "Aucun produit précis",

		"error.required":       "Ce champ est obligatoire.",
		"error.needs.required": "Choisissez au moins un besoin.",
		"error.needs.min":      "Choisissez au moins un besoin.",
		"error.email":          "Adresse e-mail invalide.",
		"error.max":            "%s caractères maximum.",
		"error.min":            "%s minimum.",
		"error.need":           "Besoin inconnu.",
		"error.lead":           "Équivalence plomb inconnue.",
		"error.size":           "Taille inconnue.",
		"error.variant":        "Non disponible pour ce produit.",
		"error.integer":        "Saisissez un nombre entier.",
		"error.gt":             "Doit être supérieur à %s.",
		"error.lte":            "Doit être au plus %s.",
		"error.quantity.lte":   "Pour plus de %s pièces, contactez-nous directement.",
		"error.datetime":       "Date invalide (format AAAA-MM-JJ).",
		"error.invalid":        "Valeur invalide.",

		"wizard.title":       "Demande de devis",
		"wizard.step":        "Étape %d sur %d",
		"wizard.next":        "Suivant",
		"wizard.back":        "Retour",
		"wizard.submit":      "Envoyer la demande",
		"wizard.sending":     "Envoi en cours…",
		"wizard.sent.title":  "Demande envoyée",
		"wizard.sent.body":   "Merci, notre équipe vous recontacte sous 48 heures ouvrées.",
		"wizard.failed":      "L'envoi a échoué. Vos informations sont conservées, vous pouvez réessayer.",
		"wizard.in_progress": "Une demande est déjà en cours d'envoi.",
		"wizard.expired":     "Votre session a expiré. Merci de recommencer votre demande.",
		"wizard.restart":     "Nouvelle demande",
		"wizard.empty":       "Non renseigné",
		"wizard.prefilled":   "Pré-rempli depuis la fiche produit",
		"wizard.busy":        "Trop de demandes en cours, merci de réessayer dans quelques minutes.",

		"contact.title":   "Nous contacter",
		"contact.lead":    "Une question sur un produit ou un service ? Écrivez-nous.",
		"contact.name":    "Nom",
		"contact.message": "Message",
		"contact.send":    "Envoyer",
		"contact.sent":    "Message envoyé. Merci !",
		"contact.failed":  "L'envoi a échoué, merci de réessayer.",
		"contact.captcha": "Vérification anti-spam invalide.",

		"email.quote.subject":   "Demande de devis - %s",
		"email.quote.intro":     "Nouvelle demande de devis reçue depuis le site.",
		"email.ack.subject":     "Votre demande de devis %s",
		"email.ack.greeting":    "Bonjour %s,",
		"email.ack.body":        "Nous avons bien reçu votre demande de devis. Vous trouverez le récapitulatif en pièce jointe.",
		"email.signature":       "L'équipe RadShield",
		"email.contact.subject": "Message de contact - %s",

		"pdf.title":            "Demande de devis",
		"pdf.reference":        "Réf. %s",
		"pdf.footer":           "Récapitulatif généré automatiquement. Il ne constitue pas une offre commerciale.",
		"pdf.page":             "Page {current} / {total}",
		"pdf.section.request":  "Demande",
		"pdf.section.product":  "Produit",
		"pdf.section.delivery": "Livraison",
		"pdf.section.company":  "Coordonnées",

		"page.not_found": "Page introuvable.",
		"page.error":     "Une erreur est survenue.",
	},
	EN: {
		"site.name":     "RadShield",
		"site.tagline":  "Radiation protection equipment for medical imaging",
		"footer.rights": "All rights reserved.",

		"nav.home":     "Home",
		"nav.products": "Products",
		"nav.services": "Services",
		"nav.about":    "About",
		"nav.contact":  "Contact",
		"nav.quote":    "Request a quote",
		"nav.legal":    "Legal notice",
		"nav.privacy":  "Privacy",
		"nav.language": "Français",

		"home.title":        "Protecting those who care",
		"home.lead":         "Lead aprons, thyroid shields, glasses and mobile screens for radiology, operating theatres and interventional cardiology.",
		"home.cta_products": "Browse the catalogue",
		"home.cta_quote":    "Get a quote",
		"home.featured":     "Featured products",

		"about.title": "About us",
		"about.body":  "We help healthcare facilities choose, maintain and test their radiation protection equipment.",

		"services.title": "Our services",
		"services.lead":  "Purchase, rental, quality control and cleaning of your protective equipment.",

		"legal.title":   "Legal notice",
		"legal.body":    "Site publisher: RadShield SAS. Hosting: European Union.",
		"privacy.title": "Privacy policy",
		"privacy.body":  "Data entered in forms is only used to answer your request. It is not stored by this site.",

		"products.title":           "Catalogue",
		"products.lead":            "Filter by category, lead equivalence or size.",
		"products.filter.category": "Category",
		"products.filter.lead":     "Lead equivalence",
		"products.filter.size":     "Size",
		"products.filter.query":    "Search",
		"products.filter.all":      "All",
		"products.filter.apply":    "Filter",
		"products.sort":            "Sort by",
		"products.empty":           "No product matches these criteria.",
		"products.count":           "%d product(s)",

		"sort.featured":   "Featured",
		"sort.title-asc":  "Name (A-Z)",
		"sort.title-desc": "Name (Z-A)",
		"sort.variants":   "Number of grades",

		"category.aprons":          "Aprons",
		"category.thyroid-shields": "Thyroid shields",
		"category.glasses":         "Glasses",
		"category.caps":            "Caps",
		"category.gloves":          "Gloves",
		"category.screens":         "Screens",

		"product.lead":       "Lead equivalence",
		"product.size":       "Size",
		"product.choose":     "Select",
		"product.datasheet":  "Technical sheet",
		"product.quote_cta":  "Request a quote for this configuration",
		"product.specs":      "Specifications",
		"product.highlights": "Highlights",
		"product.variants":   "%d grade(s) available",
		"product.not_found":  "Product not found.",

		"need.purchase":             "Purchase",
		"need.purchase.hint":        "Equip a department with new equipment.",
		"need.rental":               "Rental",
		"need.rental.hint":          "Extend your stock temporarily or during works.",
		"need.quality-control":      "Quality control",
		"need.quality-control.hint": "Yearly fluoroscopic inspection of your equipment.",
		"need.cleaning":             "Cleaning",
		"need.cleaning.hint":        "Cleaning and disinfection of aprons.",
		"need.mixed":                "Mixed",
		"need.mixed.hint":           "Several services combined.",

		"stage.need":      "Need",
		"stage.details":   "Details",
		"stage.logistics": "Logistics",
		"stage.company":   "Company",
		"stage.review":    "Review",

		"field.needs":    "Needs",
		"field.product":  "Product",
		"field.pb":       "Lead equivalence",
		"field.size":     "Size",
		"field.quantity": "Quantity",
		"field.notes":    "Notes",
		"field.address":  "Delivery address",
		"field.deadline": "Desired date",
		"field.company":  "Company",
		"field.contact":  "Contact name",
		"field.email":    "Email",
		"field.phone":    "Phone",
		"field.none":     "No specific product",

		"error.required":       "This field is required.",
		"error.needs.required": "Choose at least one need.",
		"error.needs.min":      "Choose at least one need.",
		"error.email":          "Invalid email address.",
		"error.max":            "%s characters maximum.",
		"error.min":            "At least %s.",
		"error.need":           "Unknown need.",
		"error.lead":           "Unknown lead equivalence.",
		"error.size":           "Unknown size.",
		"error.variant":        "Not available for this product.",
		"error.integer":        "Enter a whole number.",
		"error.gt":             "Must be greater than %s.",
		"error.lte":            "Must be at most %s.",
		"error.quantity.lte":   "For more than %s items, please contact us directly.",
		"error.datetime":       "Invalid date (YYYY-MM-DD).",
		"error.invalid":        "Invalid value.",

		"wizard.title":       "Quote request",
		"wizard.step":        "Step %d of %d",
		"wizard.next":        "Next",
		"wizard.back":        "Back",
		"wizard.submit":      "Send request",
		"wizard.sending":     "Sending…",
		"wizard.sent.title":  "Request sent",
		"wizard.sent.body":   "Thank you, our team will get back to you within 2 business days.",
		"wizard.failed":      "Sending failed. Your information has been kept, you can try again.",
		"wizard.in_progress": "A request is already being sent.",
		"wizard.expired":     "Your session has expired. Please start your request again.",
		"wizard.restart":     "New request",
		"wizard.empty":       "Not provided",
		"wizard.prefilled":   "Prefilled from the product page",
		"wizard.busy":        "Too many requests in progress, please try again in a few minutes.",

		"contact.title":   "Contact us",
		"contact.lead":    "A question about a product or service? Write to us.",
		"contact.name":    "Name",
		"contact.message": "Message",
		"contact.send":    "Send",
		"contact.sent":    "Message sent. Thank you!",
		"contact.failed":  "Sending failed, please try again.",
		"contact.captcha": "Invalid spam check.",

		"email.quote.subject":   "Quote request - %s",
		"email.quote.intro":     "New quote request received from the website.",
		"email.ack.subject":     "Your quote request %s",
		"email.ack.greeting":    "Hello %s,",
		"email.ack.body":        "We have received your quote request. The summary is attached.",
		"email.signature":       "The RadShield team",
		"email.contact.subject": "Contact message - %s",

		"pdf.title":            "Quote request",
		"pdf.reference":        "Ref. %s",
		"pdf.footer":           "Automatically generated summary. This is not a commercial offer.",
		"pdf.page":             "Page {current} / {total}",
		"pdf.section.request":  "Request",
		"pdf.section.product":  "Product",
		"pdf.section.delivery": "Delivery",
		"pdf.section.company":  "Contact details",

		"page.not_found": "Page not found.",
		"page.error":     "Something went wrong.",
	},
}
