package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Spanish

	message.SetString(lang, BotWelcome, "¡Hola! Te ayudaré a crear tu perfil de 222.place.\nEnvía /onboarding para empezar.")
	message.SetString(lang, BotHelp, "/onboarding - empezar o continuar el cuestionario\n/cancel - abandonarlo\n/language - cambiar entre inglés y español\n/name, /bio, /city - tu perfil\n/distance <km> - distancia máxima para buscar\n/age <min> <max> - rango de edad preferido\nComparte una ubicación para guardar tus coordenadas.")
	message.SetString(lang, BotLinked, "Tu cuenta de 222.place está vinculada.")
	message.SetString(lang, BotUnknownCommand, "Comando desconocido. Envía /help para ver lo que puedo hacer.")
	message.SetString(lang, BotInternalError, "Algo salió mal. Inténtalo de nuevo más tarde.")

	message.SetString(lang, CmdStart, "Iniciar el bot")
	message.SetString(lang, CmdOnboarding, "Empezar el cuestionario")
	message.SetString(lang, CmdCancel, "Abandonar el cuestionario")
	message.SetString(lang, CmdLanguage, "Cambiar idioma")
	message.SetString(lang, CmdName, "Nombre visible")
	message.SetString(lang, CmdBio, "Biografía")
	message.SetString(lang, CmdCity, "Ciudad")
	message.SetString(lang, CmdDistance, "Distancia máxima (km)")
	message.SetString(lang, CmdAge, "Rango de edad preferido")
	message.SetString(lang, CmdHelp, "Ayuda")

	message.SetString(lang, OnboardingTitle, "Bienvenido a 222.place")
	message.SetString(lang, OnboardingSubtitle, "Ayúdanos a conocerte para encontrar a tu gente.")
	message.SetString(lang, OnboardingLoading, "Cargando preguntas...")
	message.SetString(lang, OnboardingError, "Error")
	message.SetString(lang, OnboardingRetry, "Reintentar")
	message.SetString(lang, OnboardingNoQuestions, "No hay preguntas disponibles en este momento.")
	message.SetString(lang, OnboardingContactSupport, "Por favor, contacta con soporte.")
	message.SetString(lang, OnboardingProgress, "Pregunta %d de %d · %d%% completado")
	message.SetString(lang, OnboardingRequired, "obligatoria")
	message.SetString(lang, OnboardingPrevious, "« Anterior")
	message.SetString(lang, OnboardingNext, "Siguiente »")
	message.SetString(lang, OnboardingComplete, "Completar")
	message.SetString(lang, OnboardingClear, "Borrar respuesta")
	message.SetString(lang, OnboardingSubmitting, "Enviando...")
	message.SetString(lang, OnboardingSwitchLanguage, "Switch to English")
	message.SetString(lang, OnboardingTypeAnswer, "Escribe tu respuesta y envíala como mensaje.")
	message.SetString(lang, OnboardingScaleHint, "Elige un valor del 1 al 5. El punto medio es %d.")
	message.SetString(lang, OnboardingMultiHint, "Selecciona todas las que apliquen.")
	message.SetString(lang, OnboardingAnswer, "Tu respuesta: %s")
	message.SetString(lang, OnboardingNoAnswer, "Aún sin respuesta.")
	message.SetString(lang, OnboardingAnswerRequired, "Responde esta pregunta para continuar.")
	message.SetString(lang, OnboardingInvalidAnswer, "Esa respuesta no es válida para esta pregunta.")
	message.SetString(lang, OnboardingTextTooLong, "Tu respuesta es demasiado larga (máximo %d caracteres).")
	message.SetString(lang, OnboardingSubmitFailed, "No se pudo enviar: %s")
	message.SetString(lang, OnboardingDone, "¡Gracias! Tu perfil está listo.\n%s")
	message.SetString(lang, OnboardingAlreadyDone, "Ya completaste el cuestionario.\n%s")
	message.SetString(lang, OnboardingCancelled, "Cuestionario cancelado. Envía /onboarding para empezar de nuevo.")
	message.SetString(lang, OnboardingNoSession, "No hay ningún cuestionario en curso. Envía /onboarding para empezar.")
	message.SetString(lang, OnboardingBusy, "Espera un momento, por favor.")
	message.SetString(lang, OnboardingNoCredentials, "Tu cuenta de 222.place aún no está vinculada. Abre este bot desde la app de 222.place para vincularla.")
	message.SetString(lang, OnboardingLanguageSet, "Idioma: Español")

	message.SetString(lang, ProfileSaved, "Guardado.")
	message.SetString(lang, ProfileLocationSaved, "Ubicación guardada.")
	message.SetString(lang, ProfileUsageName, "Uso: /name <nombre visible>")
	message.SetString(lang, ProfileUsageBio, "Uso: /bio <unas palabras sobre ti>")
	message.SetString(lang, ProfileUsageCity, "Uso: /city <ciudad>")
	message.SetString(lang, ProfileUsageDistance, "Uso: /distance <km>")
	message.SetString(lang, ProfileUsageAge, "Uso: /age <mín> <máx>")
	message.SetString(lang, ProfileInvalidDistance, "La distancia debe ser un número positivo de kilómetros.")
	message.SetString(lang, ProfileInvalidAge, "Las edades deben estar entre 18 y 120, primero la mínima.")
	message.SetString(lang, ProfileInvalidLocation, "No se pudo usar esa ubicación.")
}
