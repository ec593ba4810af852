package config

// Messages contiene las plantillas liquid de los mensajes de contacto, una
// por nivel de ausencia. Son datos configurables: el generador solo conoce
// el mapeo umbral → plantilla y las variables nombre, estilista y dias.
type Messages struct {
	Reactivation string // > 90 días: oferta de reactivación con descuento
	Nudge        string // > 60 días: recordatorio con promoción
	Reminder     string // > 30 días: recordatorio simple
	ThankYou     string // ≤ 30 días: agradecimiento
	FallbackName string // saludo genérico cuando el nombre viene vacío
}

// DefaultMessages devuelve los textos que el salón usa hoy para WhatsApp.
func DefaultMessages() Messages {
	return Messages{
		Reactivation: `¡Hola {{ nombre }}! 💇‍♀️ Somos BLUSH Hair & Make-Up y te extrañamos mucho!

Han pasado {{ dias }} días desde tu última visita con {{ estilista }} y queremos verte de nuevo ✨

🎁 OFERTA ESPECIAL PARA TI:
- 20% de descuento en tu próximo servicio
- Válido hasta fin de mes

📍 Los Olivos, Lima
📱 Escríbenos para agendar tu cita

¡{{ estilista }} te está esperando! 💕`,

		Nudge: `Hola {{ nombre }}! 😊

{{ estilista }} te manda saludos desde BLUSH! ✨

Hace {{ dias }} días que no te vemos y ya es hora de consentirte de nuevo 💅

¿Agendamos tu cita esta semana?
🎁 Tenemos promociones especiales para ti

¡Te esperamos! 💕`,

		Reminder: `¡{{ nombre }}! 💖

{{ estilista }} te recuerda que ya pasaron {{ dias }} días desde tu última visita a BLUSH

Es momento de volver a lucir espectacular! ✨

¿Cuándo te viene bien para tu próxima cita?

Nos vemos pronto! 😊`,

		ThankYou: `¡Hola {{ nombre }}!

Gracias por confiar en BLUSH y en {{ estilista }} 💕

Queremos saber si quedaste satisfecha con tu último servicio y recordarte que estamos aquí para consentirte siempre que lo necesites ✨

¡Hasta pronto! 💇‍♀️`,

		FallbackName: "estimado(a) cliente",
	}
}
