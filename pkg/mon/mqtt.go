package mon

import (
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Publisher is a publish-only MQTT client.
type Publisher struct {
	Client      paho.Client
	TopicPrefix string
}

// ClientOptionsFromURL creates ClientOptions from URL. The URL path
// becomes the topic prefix.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topicPrefix, nil
}

// NewPublisherFromURL creates a Publisher from a broker URL.
func NewPublisherFromURL(brokerURL string) (*Publisher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	p := &Publisher{TopicPrefix: topicPrefix}
	opts.SetOnConnectHandler(func(paho.Client) { glog.Info("connected") })
	opts.SetConnectionLostHandler(func(c paho.Client, err error) {
		glog.Warningf("connection lost: %v", err)
	})
	p.Client = paho.NewClient(opts)
	return p, nil
}

// Connect connects the client and waits for the handshake.
func (p *Publisher) Connect() error {
	token := p.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (p *Publisher) Close() error {
	p.Client.Disconnect(0)
	return nil
}

// Pub publishes to a topic under the configured prefix.
func (p *Publisher) Pub(topic string, payload []byte) paho.Token {
	return p.Client.Publish(p.TopicPrefix+topic, 0, false, payload)
}
