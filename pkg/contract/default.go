package contract

// Default returns the built-in contract for the juice-shop CI pipeline: the
// fixed set of steps the build job must declare, in order, with the
// configuration each step is expected to carry, plus the manifest scripts
// the pipeline invokes.
func Default() *Contract {
	return &Contract{
		Workflow: WorkflowContract{
			Triggers: []TriggerRule{
				{Event: "push", Branches: []string{"main"}},
				{Event: "pull_request", Branches: []string{"main"}},
			},
			Jobs: []JobRule{
				{
					Name:   "build",
					RunsOn: "ubuntu-latest",
					StepOrder: []string{
						"Checkout code",
						"Set up Node.js",
						"Install dependencies",
						"Run tests",
						"Build the app",
						"Publish the application to JFrog Artifactory",
					},
					Steps: []StepRule{
						{
							Name: "Set up Node.js",
							Uses: "actions/setup-node@v2",
							With: map[string]string{"node-version": "20"},
						},
						{
							Name:        "Install dependencies",
							RunContains: []string{"npm install"},
						},
						{
							Name:        "Run tests",
							RunContains: []string{"npm test"},
						},
						{
							Name:        "Build the app",
							RunContains: []string{"npm run build"},
						},
						{
							Name: "Publish the application to JFrog Artifactory",
							RunContains: []string{
								"curl",
								"-X PUT",
								"./dist/juice-shop.tar.gz",
								"juice-shop/latest/juice-shop.tar.gz",
							},
							EnvKeys: []string{
								"ARTIFACTORY_URL",
								"ARTIFACTORY_USERNAME",
								"ARTIFACTORY_API_KEY",
							},
						},
					},
				},
			},
		},
		Manifest: ManifestContract{
			RequireDependencies: true,
			Scripts:             []string{"test", "build:frontend", "build:server"},
		},
	}
}
