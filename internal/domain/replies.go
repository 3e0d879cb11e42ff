package domain

// CannedReplies are the simulated assistant answers shown while the real
// agent is still in training.
var CannedReplies = []string{
	"Hola 👋 Soy el asistente de Segurab. Estoy en fase de entrenamiento con nuestra documentación corporativa.",
	"Pronto podré responder sobre nuestros servicios, tecnologías y procesos internos.",
	"Si tienes dudas urgentes, puedes escribirnos a contacto@Segurab.com.",
	"¡Estamos construyendo algo genial! Muy pronto estaré listo para ayudarte 🚀",
}
