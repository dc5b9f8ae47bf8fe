package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Global flags.
	flagDebug    = "debug"
	flagLogLevel = "log-level"

	// Command flags.
	flagType      = "type"
	flagValue     = "value"
	flagJSON      = "json"
	flagDirection = "direction"
	flagHeading   = "heading"
	flagPitch     = "pitch"
	flagBank      = "bank"
	flagDegrees   = "degrees"
	flagFrom      = "from"
	flagTo        = "to"
	flagSteps     = "steps"
	flagQuat      = "quat"
	flagExponent  = "exponent"
	flagVector    = "vector"
	flagInverse   = "inverse"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagJSON,
		Usage: "print JSON instead of a table",
	}
}

func orientationTypeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagType,
		Usage: "orientation type: euler_angles, euler_angles_degrees, quaternion, rotation_matrix or axis_angles",
	}
}

var app = &cli.App{
	Name:            "orient",
	Usage:           "convert, canonize and interpolate 3D orientations",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringSliceFlag{
			Name:  flagLogLevel,
			Usage: "set the level of matching loggers, e.g. orient.slerp=debug",
		},
	},
	Before: setupLogging,
	Commands: []*cli.Command{
		{
			Name:      "convert",
			Usage:     "print an orientation in every representation",
			UsageText: `orient convert --type <type> --value <json> [--direction inertial_to_object] [--json]`,
			Flags: []cli.Flag{
				orientationTypeFlag(),
				&cli.StringFlag{
					Name:     flagValue,
					Required: true,
					Usage:    `orientation value as JSON, e.g. {"heading":0.5,"pitch":0,"bank":0}`,
				},
				&cli.StringFlag{
					Name:  flagDirection,
					Value: "object_to_inertial",
					Usage: "mapping the printed quaternion and matrix perform: object_to_inertial or inertial_to_object",
				},
				jsonFlag(),
			},
			Action: ConvertAction,
		},
		{
			Name:      "canonize",
			Usage:     "rewrite heading, pitch and bank in canonical form",
			UsageText: `orient canonize --heading <h> --pitch <p> --bank <b> [--degrees] [--json]`,
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: flagHeading, Usage: "rotation about up"},
				&cli.Float64Flag{Name: flagPitch, Usage: "rotation about right"},
				&cli.Float64Flag{Name: flagBank, Usage: "rotation about forward"},
				&cli.BoolFlag{Name: flagDegrees, Usage: "angles are in degrees"},
				jsonFlag(),
			},
			Action: CanonizeAction,
		},
		{
			Name:      "slerp",
			Usage:     "interpolate between two orientations",
			UsageText: `orient slerp --from <json> --to <json> [--type quaternion] [--steps 4] [--json]`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagType,
					Value: "quaternion",
					Usage: "orientation type of --from and --to",
				},
				&cli.StringFlag{Name: flagFrom, Required: true, Usage: "start orientation as JSON"},
				&cli.StringFlag{Name: flagTo, Required: true, Usage: "end orientation as JSON"},
				&cli.IntFlag{Name: flagSteps, Value: 4, Usage: "number of intervals between the endpoints"},
				jsonFlag(),
			},
			Action: SlerpAction,
		},
		{
			Name:      "pow",
			Usage:     "scale the angle of a rotation",
			UsageText: `orient pow --quat <json> --exponent <e> [--json]`,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: flagQuat, Required: true, Usage: `quaternion as JSON, e.g. {"w":1,"x":0,"y":0,"z":0}`},
				&cli.Float64Flag{Name: flagExponent, Required: true, Usage: "fraction of the rotation to keep"},
				jsonFlag(),
			},
			Action: PowAction,
		},
		{
			Name:      "rotate",
			Usage:     "rotate a vector between the object and inertial frames",
			UsageText: `orient rotate --type <type> --value <json> --vector x,y,z [--inverse] [--json]`,
			Flags: []cli.Flag{
				orientationTypeFlag(),
				&cli.StringFlag{Name: flagValue, Usage: "orientation value as JSON"},
				&cli.StringFlag{Name: flagVector, Required: true, Usage: "vector as three comma or space separated numbers"},
				&cli.BoolFlag{Name: flagInverse, Usage: "map from the inertial frame into the object frame"},
				jsonFlag(),
			},
			Action: RotateAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
