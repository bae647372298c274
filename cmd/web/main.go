package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/deepinsight/internal/ai"
	"github.com/myrjola/deepinsight/internal/broker"
	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/interview"
	"github.com/myrjola/deepinsight/internal/logging"
	"github.com/myrjola/deepinsight/internal/pprofserver"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/myrjola/deepinsight/sqlite"
)

type application struct {
	logger      *slog.Logger
	completer   ai.Completer
	dbs         *sqlite.Database
	businesses  *repositories.BusinessRepository
	employees   *repositories.EmployeeRepository
	questions   *repositories.QuestionRepository
	interviews  *repositories.InterviewRepository
	responses   *repositories.ResponseRepository
	simulator   *interview.Simulator
	simulations *broker.ChannelBroker[string, interview.EmployeeOutcome]
}

func main() {
	addr := flag.String("addr", "localhost:4000", "HTTP network address")
	pprofPort := flag.String("pprof-port", ":6060", "Port for pprof listening on localhost")
	dbURL := flag.String("sqlite-url", "./deepinsight.sqlite", "SQLite URL")
	flag.Parse()

	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(*pprofPort, logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", errors.SlogError(err))
	}

	if err := run(ctx, logger, *addr, *dbURL); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, addr string, dbURL string) error {
	dbs, err := sqlite.NewDatabase(ctx, dbURL)
	if err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", dbURL))
	}
	logger.Info("connected to db")

	aiClient, err := ai.NewClientFromEnv()
	if err != nil {
		return errors.Wrap(err, "configure AI client")
	}

	simulations := broker.NewChannelBroker[string, interview.EmployeeOutcome]()
	go simulations.Start()
	defer simulations.Stop()

	app := application{
		logger:      logger,
		completer:   aiClient,
		dbs:         dbs,
		businesses:  repositories.NewBusinessRepository(dbs, logger),
		employees:   repositories.NewEmployeeRepository(dbs, logger),
		questions:   repositories.NewQuestionRepository(dbs, logger),
		interviews:  repositories.NewInterviewRepository(dbs, logger),
		responses:   repositories.NewResponseRepository(dbs, logger),
		simulator:   interview.NewSimulator(dbs, aiClient, logger),
		simulations: simulations,
	}

	return app.configureAndStartServer(ctx, addr)
}

// newSequencer builds a fresh request-scoped sequencer. Engine services are
// stateless and constructed per request instead of shared.
func (app *application) newSequencer() *interview.Sequencer {
	synth := interview.NewSynthesizer(app.questions, app.completer, app.logger)
	return interview.NewSequencer(app.interviews, app.questions, app.responses, synth, app.logger)
}
