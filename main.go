package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"

	"github.com/Ts0n/rekapi/api"
	"github.com/Ts0n/rekapi/kapi"
	"github.com/Ts0n/rekapi/stream"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Loop     *kapi.Loop
	Kapi     *kapi.Kapi
	Streamer *stream.Streamer
	Api      *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	a.Loop.Post(func() {
		if !a.Kapi.IsPlaying() {
			a.Kapi.Play(a.Config.Show.Iterations)
		}
	})
}

func (a *app) readConfig(configPath string) {
	config, err := stream.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) buildShow() {
	a.Loop = kapi.NewLoop()
	a.Kapi = kapi.New(func(o *kapi.Options) {
		o.Config.FPS = a.Config.Show.FPS
		o.Scheduler = a.Loop
	})

	a.Streamer = stream.NewStreamer(a.Kapi, stream.NewMQTTPublisher(a.Client),
		a.Config.Mqtt.Topics.Stream, a.Config.Show.Pixels)
	if a.Config.Show.ClearOnUpdate != nil {
		a.Streamer.ClearOnUpdate = *a.Config.Show.ClearOnUpdate
	}
	a.Streamer.Persistence = a.Config.Show.Persistence

	strips, err := stream.BuildShow(a.Kapi, a.Config.Show)
	if err != nil {
		panic(err)
	}
	log.Printf("Show: %d strips, %v ms", len(strips), a.Kapi.AnimationLength())

	a.Kapi.On(kapi.EventAnimationComplete, func(k *kapi.Kapi, _ any) {
		log.Println("Show complete")
	})

	a.Api = api.NewApi(a.Kapi, a.Loop, func(o *api.Options) {
		o.Snapshot = a.Streamer
		o.StaticDir = "client/dist"
	})
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(a.Config.HTTP.Addr); err != nil {
			log.Println(err)
		}
	}()

	log.Println("Running...")
	if err := a.Loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Println(err)
	}
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	envPath := flag.String("env", ".env", "Optional .env file with REKAPI_MQTT_* overrides.")
	debug := flag.Bool("debug", false, "Log engine events.")
	flag.Parse()

	if *debug {
		kapi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := godotenv.Load(*envPath); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config.Show)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("rekapi").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.buildShow()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
}
