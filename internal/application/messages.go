package application

import (
	"errors"
	"strings"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// User-facing messages are French: the storefront serves a francophone
// audience and the remote API answers in English.
const (
	MsgGenericError       = "Une erreur est survenue. Veuillez réessayer."
	MsgSessionExpired     = "Votre session a expiré. Veuillez vous reconnecter."
	MsgNotAuthenticated   = "Veuillez vous connecter pour continuer."
	MsgServerWakingUp     = "Le serveur démarre, cela peut prendre jusqu'à une minute. Veuillez patienter..."
	MsgNetworkError       = "Impossible de joindre le serveur. Vérifiez votre connexion."
	MsgFieldsRequired     = "Veuillez remplir tous les champs obligatoires."
	MsgPasswordMismatch   = "Les mots de passe ne correspondent pas."
	MsgPasswordTooShort   = "Le mot de passe doit contenir au moins 6 caractères."
	MsgProductNotFound    = "Produit non trouvé."
	MsgCategoryNotFound   = "Catégorie non trouvée."
	MsgOrderNotFound      = "Commande non trouvée."
	MsgInvalidQuantity    = "La quantité doit être supérieure à zéro."
	MsgCartEmpty          = "Votre panier est vide."
	MsgItemNotInCart      = "Article introuvable dans le panier."
	MsgCheckoutNameNeeded = "Veuillez indiquer votre nom pour passer commande."
	MsgCheckoutPhoneNeeded = "Veuillez indiquer votre numéro de téléphone pour passer commande."
)

// Local validation errors carry the French message directly.
var (
	ErrFieldsRequired      = errors.New(MsgFieldsRequired)
	ErrPasswordMismatch    = errors.New(MsgPasswordMismatch)
	ErrPasswordTooShort    = errors.New(MsgPasswordTooShort)
	ErrInvalidQuantity     = errors.New(MsgInvalidQuantity)
	ErrItemNotInCart       = errors.New(MsgItemNotInCart)
	ErrCheckoutNameNeeded  = errors.New(MsgCheckoutNameNeeded)
	ErrCheckoutPhoneNeeded = errors.New(MsgCheckoutPhoneNeeded)
)

// serverPhrases maps the English messages the API is known to emit to
// their French presentation. Matching is case-insensitive on substrings
// because the server sometimes prefixes messages with context.
var serverPhrases = []struct {
	english string
	french  string
}{
	{"invalid credentials", "Email ou mot de passe incorrect."},
	{"invalid email or password", "Email ou mot de passe incorrect."},
	{"user already exists", "Un compte existe déjà avec cet email."},
	{"email already exists", "Un compte existe déjà avec cet email."},
	{"email already in use", "Un compte existe déjà avec cet email."},
	{"user not found", "Aucun compte trouvé avec cet email."},
	{"account is disabled", "Ce compte a été désactivé."},
	{"account is inactive", "Ce compte a été désactivé."},
	{"product not found", MsgProductNotFound},
	{"category not found", MsgCategoryNotFound},
	{"order not found", MsgOrderNotFound},
	{"insufficient stock", "Stock insuffisant pour ce produit."},
	{"out of stock", "Ce produit est en rupture de stock."},
	{"cart is empty", MsgCartEmpty},
	{"cart item not found", MsgItemNotInCart},
	{"too many requests", "Trop de tentatives. Veuillez réessayer dans quelques instants."},
	{"validation failed", "Certains champs sont invalides. Vérifiez votre saisie."},
}

// timeouter matches both net.Error and url.Error without naming either,
// keeping this package off the transport's imports.
type timeouter interface {
	Timeout() bool
}

// TranslateError renders any error from the access layer as a French
// message suitable for direct display. Unknown errors collapse to a
// generic message so raw server text never leaks to the user.
func TranslateError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return MsgSessionExpired
	case errors.Is(err, domain.ErrNotAuthenticated):
		return MsgNotAuthenticated
	case errors.Is(err, domain.ErrNotFound):
		return notFoundMessage(err)
	}

	var t timeouter
	if errors.As(err, &t) && t.Timeout() {
		return MsgServerWakingUp
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		lower := strings.ToLower(apiErr.Message)
		for _, p := range serverPhrases {
			if strings.Contains(lower, p.english) {
				return p.french
			}
		}
		return MsgGenericError
	}

	// Local validation errors already carry their French text.
	msg := err.Error()
	if isFrenchMessage(msg) {
		return msg
	}
	return MsgGenericError
}

func notFoundMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "product"):
		return MsgProductNotFound
	case strings.Contains(msg, "categor"):
		return MsgCategoryNotFound
	case strings.Contains(msg, "order"):
		return MsgOrderNotFound
	}
	return MsgGenericError
}

func isFrenchMessage(msg string) bool {
	for _, known := range []string{
		MsgFieldsRequired, MsgPasswordMismatch, MsgPasswordTooShort,
		MsgInvalidQuantity, MsgCartEmpty, MsgItemNotInCart, MsgCheckoutNameNeeded,
		MsgCheckoutPhoneNeeded,
	} {
		if msg == known {
			return true
		}
	}
	return false
}
