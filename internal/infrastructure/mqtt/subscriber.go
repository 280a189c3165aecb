package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/pkg/config"
)

// signalIngester caso de uso que recibe cada mensaje.
type signalIngester interface {
	Ingest(ctx context.Context, source string, in dto.SignalInput) (*dto.SignalResponse, error)
}

// handleTimeout tope para procesar un mensaje (la ingesta abre una transacción por señal).
const handleTimeout = 10 * time.Second

// Subscriber escucha el tópico de señales (ej. controladores/+/signals) y las pasa a la ingesta.
// El segmento comodín del tópico es el número del controlador y se usa cuando el payload no trae controlador_id.
type Subscriber struct {
	cfg      config.MQTTConfig
	ingester signalIngester
	log      zerolog.Logger
	client   paho.Client
}

// NewSubscriber construye el suscriptor; Start abre la conexión.
func NewSubscriber(cfg config.MQTTConfig, ingester signalIngester, log zerolog.Logger) *Subscriber {
	return &Subscriber{cfg: cfg, ingester: ingester, log: log}
}

// Start conecta al broker. La suscripción se rehace en cada reconexión desde el OnConnect.
func (s *Subscriber) Start() error {
	opts := paho.NewClientOptions()
	opts.AddBroker(s.cfg.Broker)
	opts.SetClientID(s.cfg.ClientID)
	opts.SetUsername(s.cfg.Username)
	opts.SetPassword(s.cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOrderMatters(false)
	opts.SetOnConnectHandler(func(c paho.Client) {
		s.log.Info().Str("broker", s.cfg.Broker).Msg("MQTT conectado")
		if err := s.subscribe(c); err != nil {
			s.log.Error().Err(err).Str("topic", s.cfg.Topic).Msg("no se pudo suscribir")
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		s.log.Warn().Err(err).Msg("MQTT conexión perdida")
	})

	s.client = paho.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("conectar a MQTT %s: %w", s.cfg.Broker, token.Error())
	}
	return nil
}

func (s *Subscriber) subscribe(c paho.Client) error {
	token := c.Subscribe(s.cfg.Topic, 1, s.handle)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	s.log.Info().Str("topic", s.cfg.Topic).Msg("suscrito a señales")
	return nil
}

// Close desconecta esperando hasta 250 ms a que terminen los mensajes en curso.
func (s *Subscriber) Close() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}

func (s *Subscriber) handle(_ paho.Client, msg paho.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	s.process(ctx, msg.Topic(), msg.Payload())
}

// process decodifica el payload y lo ingiere. Los errores se registran; QoS 1 no tiene canal de respuesta.
func (s *Subscriber) process(ctx context.Context, topic string, payload []byte) {
	var in dto.SignalInput
	if err := json.Unmarshal(payload, &in); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("payload MQTT inválido")
		return
	}
	if in.ControllerAddress == "" {
		in.ControllerAddress = addressFromTopic(topic)
	}

	if _, err := s.ingester.Ingest(ctx, ingestion.SourceMQTT, in); err != nil {
		ev := s.log.Error()
		if errors.Is(err, domain.ErrDuplicateSignal) {
			ev = s.log.Debug()
		} else if errors.Is(err, domain.ErrInvalidSignal) || errors.Is(err, domain.ErrControllerNotFound) {
			ev = s.log.Warn()
		}
		ev.Err(err).Str("topic", topic).Str("controlador_id", in.ControllerAddress).Msg("señal MQTT descartada")
	}
}

// addressFromTopic extrae el segundo segmento de prefijo/{numero}/sufijo.
func addressFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-2]
}
