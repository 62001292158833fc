package dialerr

import "golang.org/x/text/language"

// Supported lists the languages user-facing messages are available in.
// The first entry is the fallback.
var Supported = []language.Tag{language.English, language.Spanish, language.French}

var matcher = language.NewMatcher(Supported)

var messages = map[Kind]map[string]string{
	KindEmptyNumber: {
		"en": "Invalid phone number: the number is empty.",
		"es": "Número de teléfono no válido: el número está vacío.",
		"fr": "Numéro de téléphone invalide : le numéro est vide.",
	},
	KindInvalidFormat: {
		"en": "The phone number is not written in a valid format.",
		"es": "El número de teléfono no tiene un formato válido.",
		"fr": "Le numéro de téléphone n'est pas écrit dans un format valide.",
	},
	KindInvalidNationalFormat: {
		"en": "The phone number is not written in a valid national format.",
		"es": "El número de teléfono no tiene un formato nacional válido.",
		"fr": "Le numéro de téléphone n'est pas écrit dans un format national valide.",
	},
	KindInvalidInternationalFormatRequired: {
		"en": "The phone number is not written in a valid international format. Example of valid international format: +33 1 41 98 12 42.",
		"es": "El número de teléfono no tiene un formato internacional válido. Ejemplo de formato internacional válido: +34 1 41 98 12 42.",
		"fr": "Le numéro de téléphone n'est pas écrit dans un format international valide. Exemple de format international valide : +33 1 41 98 12 42.",
	},
	KindNoConfiguration: {
		"en": "No Asterisk server is configured for the current user.",
		"es": "No hay ningún servidor Asterisk configurado para el usuario actual.",
		"fr": "Aucun serveur Asterisk n'est configuré pour l'utilisateur courant.",
	},
	KindNoChannelType: {
		"en": "There is no channel type configured for the current user.",
		"es": "No hay ningún tipo de canal configurado para el usuario actual.",
		"fr": "Aucun type de canal n'est configuré pour l'utilisateur courant.",
	},
	KindNoInternalNumber: {
		"en": "There is no internal phone number configured for the current user.",
		"es": "No hay ningún número interno configurado para el usuario actual.",
		"fr": "Aucun numéro interne n'est configuré pour l'utilisateur courant.",
	},
	KindNoPhoneNumber: {
		"en": "There is no phone number.",
		"es": "No hay número de teléfono.",
		"fr": "Il n'y a pas de numéro de téléphone.",
	},
	KindDNSResolutionFailed: {
		"en": "Can't resolve the DNS of the Asterisk server.",
		"es": "No se puede resolver el DNS del servidor Asterisk.",
		"fr": "Impossible de résoudre le DNS du serveur Asterisk.",
	},
	KindConnectionFailed: {
		"en": "The connection to the Asterisk server has failed. Please check the configuration on both sides.",
		"es": "La conexión con el servidor Asterisk ha fallado. Compruebe la configuración en ambos lados.",
		"fr": "La connexion au serveur Asterisk a échoué. Vérifiez la configuration des deux côtés.",
	},
	KindDialInProgress: {
		"en": "A call is already being placed for you. Please wait a moment.",
		"es": "Ya se está realizando una llamada para usted. Espere un momento.",
		"fr": "Un appel est déjà en cours de lancement. Veuillez patienter.",
	},
	KindInternal: {
		"en": "Unexpected error while placing the call.",
		"es": "Error inesperado al realizar la llamada.",
		"fr": "Erreur inattendue lors du lancement de l'appel.",
	},
}

// MatchLanguage picks the best supported language for the given preferences
// (Accept-Language header values, then a stored user language). Empty or
// unparsable input falls back to English.
func MatchLanguage(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// Message returns the localized user-facing text for a kind.
func (k Kind) Message(lang language.Tag) string {
	byLang, ok := messages[k]
	if !ok {
		byLang = messages[KindInternal]
	}
	base, _ := lang.Base()
	if m, ok := byLang[base.String()]; ok {
		return m
	}
	return byLang["en"]
}
