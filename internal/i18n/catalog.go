package i18n

// messages is loaded into the x/text catalog at init.
var messages = map[Locale]map[string]string{
	French: {
		"advice.glycemie.title":   "Glycémie",
		"advice.glycemie.message": "Glycémie élevée, évitez les sucres rapides.",
		"advice.tension.title":    "Tension",
		"advice.tension.message":  "Tension haute, surveillez votre consommation de sel.",
		"advice.poids.title":      "Poids",
		"advice.poids.message":    "Légère prise de poids (+%.1fkg).",
		"advice.general.title":    "Bilan Santé",
		"advice.general.message":  "Constantes stables, continuez ainsi !",

		"measurement.created": "Mesure ajoutée avec succès!",
		"measurement.updated": "Mesure mise à jour (moyenne sur 30min) avec succès!",
		"measurement.deleted": "Mesure supprimée.",

		"reminder.created": "Rappel ajouté!",
		"reminder.toggled": "Rappel mis à jour.",
		"reminder.deleted": "Rappel supprimé.",

		"slot.created":          "Créneau libre ajouté.",
		"booking.sent":          "Votre demande a été envoyée au médecin.",
		"appointment.confirmed": "Rendez-vous confirmé.",
		"appointment.cancelled": "Rendez-vous annulé/supprimé.",
		"appointment.done":      "Rendez-vous terminé.",
		"alert.acknowledged":    "Alerte prise en compte.",

		"error.invalid_duration": "L'heure de fin doit être après l'heure de début.",
		"error.invalid_time":     "Format d'heure invalide (HH:MM).",
		"error.invalid_date":     "Format de date invalide.",
		"error.invalid_kind":     "Type de mesure inconnu.",
		"error.invalid_value":    "Valeur de mesure invalide.",
		"error.invalid_input":    "Données invalides.",
		"error.slot_unavailable": "Ce créneau n'est plus disponible.",
		"error.conflict":         "Cette action n'est pas possible dans l'état actuel du rendez-vous.",
		"error.forbidden":        "Action non autorisée.",
		"error.not_found":        "Élément introuvable.",
	},
	English: {
		"advice.glycemie.title":   "Blood sugar",
		"advice.glycemie.message": "High blood sugar, avoid fast sugars.",
		"advice.tension.title":    "Blood pressure",
		"advice.tension.message":  "High blood pressure, watch your salt intake.",
		"advice.poids.title":      "Weight",
		"advice.poids.message":    "Slight weight gain (+%.1fkg).",
		"advice.general.title":    "Health summary",
		"advice.general.message":  "Your vitals are stable, keep it up!",

		"measurement.created": "Measurement added successfully!",
		"measurement.updated": "Measurement updated (30 min average) successfully!",
		"measurement.deleted": "Measurement deleted.",

		"reminder.created": "Reminder added!",
		"reminder.toggled": "Reminder updated.",
		"reminder.deleted": "Reminder deleted.",

		"slot.created":          "Free slot added.",
		"booking.sent":          "Your request has been sent to the doctor.",
		"appointment.confirmed": "Appointment confirmed.",
		"appointment.cancelled": "Appointment cancelled/removed.",
		"appointment.done":      "Appointment completed.",
		"alert.acknowledged":    "Alert acknowledged.",

		"error.invalid_duration": "End time must be after start time.",
		"error.invalid_time":     "Invalid time format (HH:MM).",
		"error.invalid_date":     "Invalid date format.",
		"error.invalid_kind":     "Unknown measurement type.",
		"error.invalid_value":    "Invalid measurement value.",
		"error.invalid_input":    "Invalid input.",
		"error.slot_unavailable": "This slot is no longer available.",
		"error.conflict":         "This action is not possible in the appointment's current state.",
		"error.forbidden":        "Action not allowed.",
		"error.not_found":        "Item not found.",
	},
}

var lists = map[Locale]map[string][]string{
	French: {
		"advice.glycemie.avoid": {"Sodas & Jus", "Pâtisseries", "Pain blanc"},
		"advice.glycemie.favor": {"Légumes fibres", "Eau", "Céréales complètes"},
		"advice.tension.avoid":  {"Sel de table", "Charcuteries", "Plats préparés"},
		"advice.tension.favor":  {"Fruits & Légumes", "Potassium", "Activités calmes"},
		"advice.poids.avoid":    {"Grignotage", "Plats gras", "Sédentarité"},
		"advice.poids.favor":    {"Marche active", "Protéines maigres", "Repas fixes"},
	},
	English: {
		"advice.glycemie.avoid": {"Sodas & juices", "Pastries", "White bread"},
		"advice.glycemie.favor": {"Fibrous vegetables", "Water", "Whole grains"},
		"advice.tension.avoid":  {"Table salt", "Cured meats", "Ready meals"},
		"advice.tension.favor":  {"Fruits & vegetables", "Potassium", "Calm activities"},
		"advice.poids.avoid":    {"Snacking", "Fatty dishes", "Sedentary lifestyle"},
		"advice.poids.favor":    {"Brisk walking", "Lean proteins", "Regular meals"},
	},
}
