package detectionRepository

const (
	queryCreateAnalysesTable = `
		CREATE TABLE IF NOT EXISTS analysis_journal (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			input_mode TEXT NOT NULL,
			backend TEXT NOT NULL,
			message TEXT NOT NULL,
			simulated BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`

	queryCreateAnalysis = `
		INSERT INTO analysis_journal (
			id,
			session_id,
			latitude,
			longitude,
			input_mode,
			backend,
			message,
			simulated,
			created_at
		) VALUES (
			:id,
			:session_id,
			:latitude,
			:longitude,
			:input_mode,
			:backend,
			:message,
			:simulated,
			:created_at
		)
	`

	queryListRecentAnalyses = `
		SELECT
			id,
			session_id,
			latitude,
			longitude,
			input_mode,
			backend,
			message,
			simulated,
			created_at
		FROM analysis_journal
		ORDER BY created_at DESC, id DESC
		LIMIT :limit
	`

	queryListSessionAnalyses = `
		SELECT
			id,
			session_id,
			latitude,
			longitude,
			input_mode,
			backend,
			message,
			simulated,
			created_at
		FROM analysis_journal
		WHERE session_id = :session_id
		ORDER BY created_at DESC, id DESC
		LIMIT :limit
	`
)
