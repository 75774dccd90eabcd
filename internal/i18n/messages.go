// Package i18n holds the static localization table: a fixed mapping from
// (message key, language) to a display string for the supported languages
// (English, Azerbaijani, Russian). It is a pure lookup with no state; the
// HTTP layer consults it to localize user-facing error and status messages.
//
// Language negotiation uses golang.org/x/text. An Accept-Language header is
// matched against the supported set; anything unrecognised resolves to
// English.
package i18n

import (
	"golang.org/x/text/language"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// supported must stay aligned with domain.Languages; English first so it is
// the matcher's fallback.
var supported = []language.Tag{
	language.English,
	language.Azerbaijani,
	language.Russian,
}

var matcher = language.NewMatcher(supported)

// Default is the language used when negotiation yields nothing usable.
const Default = domain.LangEN

// Match resolves an Accept-Language header value to one of the supported
// language codes. Empty or unparseable input yields English.
func Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return domain.LangEN
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.LangEN
	}
	_, idx, _ := matcher.Match(tags...)
	switch supported[idx] {
	case language.Azerbaijani:
		return domain.LangAZ
	case language.Russian:
		return domain.LangRU
	default:
		return domain.LangEN
	}
}

// Message keys used by the HTTP layer.
const (
	MsgNotAuthenticated   = "error.not_authenticated"
	MsgForbidden          = "error.forbidden"
	MsgNotFound           = "error.not_found"
	MsgClassFull          = "error.class_full"
	MsgClassUnavailable   = "error.class_unavailable"
	MsgInvalidCredentials = "error.invalid_credentials"
	MsgEmailTaken         = "error.email_taken"
	MsgWeakCredentials    = "error.weak_credentials"
	MsgTicketClosed       = "error.ticket_closed"
	MsgBadRequest         = "error.bad_request"
	MsgInternal           = "error.internal"
	MsgRateLimited        = "error.rate_limited"
	MsgPurchaseConfirmed  = "status.purchase_confirmed"
	MsgTicketConfirmed    = "status.ticket_confirmed"
	MsgTicketCancelled    = "status.ticket_cancelled"
)

// entry holds the three fixed translations of one message.
type entry struct{ en, az, ru string }

var messages = map[string]entry{
	MsgNotAuthenticated: {
		en: "Please sign in to continue",
		az: "Davam etmək üçün daxil olun",
		ru: "Войдите, чтобы продолжить",
	},
	MsgForbidden: {
		en: "You do not have permission to do this",
		az: "Bunu etmək üçün icazəniz yoxdur",
		ru: "У вас нет прав для этого действия",
	},
	MsgNotFound: {
		en: "The requested record was not found",
		az: "Axtarılan qeyd tapılmadı",
		ru: "Запрошенная запись не найдена",
	},
	MsgClassFull: {
		en: "This class is fully booked",
		az: "Bu dərsdə boş yer qalmayıb",
		ru: "В этом классе больше нет мест",
	},
	MsgClassUnavailable: {
		en: "This class is no longer available",
		az: "Bu dərs artıq mövcud deyil",
		ru: "Этот класс больше не доступен",
	},
	MsgInvalidCredentials: {
		en: "Incorrect email or password",
		az: "E-poçt və ya şifrə yanlışdır",
		ru: "Неверный email или пароль",
	},
	MsgEmailTaken: {
		en: "An account with this email already exists",
		az: "Bu e-poçt ilə hesab artıq mövcuddur",
		ru: "Аккаунт с этим email уже существует",
	},
	MsgWeakCredentials: {
		en: "Password must be at least 6 characters",
		az: "Şifrə ən azı 6 simvoldan ibarət olmalıdır",
		ru: "Пароль должен содержать не менее 6 символов",
	},
	MsgTicketClosed: {
		en: "This conversation has been closed",
		az: "Bu söhbət bağlanıb",
		ru: "Этот диалог закрыт",
	},
	MsgBadRequest: {
		en: "The request is invalid",
		az: "Sorğu yanlışdır",
		ru: "Некорректный запрос",
	},
	MsgInternal: {
		en: "Something went wrong, please try again",
		az: "Xəta baş verdi, yenidən cəhd edin",
		ru: "Произошла ошибка, попробуйте ещё раз",
	},
	MsgRateLimited: {
		en: "Too many requests, please slow down",
		az: "Həddindən artıq sorğu, bir az gözləyin",
		ru: "Слишком много запросов, подождите немного",
	},
	MsgPurchaseConfirmed: {
		en: "Program purchased successfully! Check your email for details.",
		az: "Proqram uğurla alındı! Təfərrüatlar üçün e-poçtunuzu yoxlayın.",
		ru: "Программа успешно куплена! Подробности отправлены на вашу почту.",
	},
	MsgTicketConfirmed: {
		en: "Ticket purchased successfully! Check your email for class details.",
		az: "Bilet uğurla alındı! Dərs təfərrüatları üçün e-poçtunuzu yoxlayın.",
		ru: "Билет успешно куплен! Детали занятия отправлены на вашу почту.",
	},
	MsgTicketCancelled: {
		en: "Your booking has been cancelled",
		az: "Rezervasiyanız ləğv edildi",
		ru: "Ваша бронь отменена",
	},
}

// T returns the translation of key for lang. A missing language falls back
// to English; an unknown key falls back to the key itself so broken lookups
// stay visible instead of rendering blank.
func T(lang, key string) string {
	e, ok := messages[key]
	if !ok {
		return key
	}
	switch lang {
	case domain.LangAZ:
		if e.az != "" {
			return e.az
		}
	case domain.LangRU:
		if e.ru != "" {
			return e.ru
		}
	}
	return e.en
}
