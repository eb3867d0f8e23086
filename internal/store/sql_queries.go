package store

const (
	createUser = `INSERT INTO users (email, password_hash, is_admin)
    VALUES ($1, $2, $3)
    RETURNING id, email, password_hash, is_admin, password_updated_at, failed_login_attempts, last_failed_login, created_at;`

	findUserByEmail = `SELECT id, email, password_hash, is_admin, password_updated_at, failed_login_attempts, last_failed_login, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, email, password_hash, is_admin, password_updated_at, failed_login_attempts, last_failed_login, created_at
    FROM users
    WHERE id = $1;`

	updateUserHash = `UPDATE users
    SET password_hash = $1,
        password_updated_at = CURRENT_TIMESTAMP,
        failed_login_attempts = 0,
        last_failed_login = NULL
    WHERE email = $2;`

	incrementFailedLogins = `UPDATE users
    SET failed_login_attempts = COALESCE(failed_login_attempts, 0) + 1,
        last_failed_login = CURRENT_TIMESTAMP
    WHERE email = $1;`

	resetFailedLogins = `UPDATE users
    SET failed_login_attempts = 0,
        last_failed_login = NULL
    WHERE email = $1;`

	upsertAdmin = `INSERT INTO users (email, password_hash, is_admin)
    VALUES ($1, $2, TRUE)
    ON CONFLICT (email)
    DO UPDATE SET password_hash = EXCLUDED.password_hash,
                  is_admin = TRUE,
                  password_updated_at = CURRENT_TIMESTAMP
    RETURNING id;`

	createFeedback = `INSERT INTO user_feedback (
        name,
        email,
        screen_time_addiction,
        consumptive_habits,
        inappropriate_content,
        bad_influences,
        safety,
        false_information,
        social_distortion,
        other_concern,
        other_description,
        gains_description
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    RETURNING id;`

	feedbackStats = `SELECT
        COUNT(*) AS total,
        COUNT(*) FILTER (WHERE DATE(created_at) = CURRENT_DATE) AS today,
        CASE
            WHEN COUNT(*) FILTER (WHERE screen_time_addiction) > COUNT(*) FILTER (WHERE safety) THEN 'Screen Time'
            WHEN COUNT(*) FILTER (WHERE safety) > COUNT(*) FILTER (WHERE inappropriate_content) THEN 'Safety'
            ELSE 'Content'
        END AS top_concern
    FROM user_feedback;`

	createVerificationToken = `INSERT INTO email_verification_tokens (email, token, expires_at)
    VALUES ($1, $2, $3)
    RETURNING id, created_at;`

	// Redemption is a single conditional UPDATE so two concurrent attempts
	// serialize on the row: at most one sees used_at IS NULL and succeeds.
	redeemVerificationToken = `UPDATE email_verification_tokens
    SET used_at = CURRENT_TIMESTAMP
    WHERE token = $1 AND used_at IS NULL AND expires_at > CURRENT_TIMESTAMP
    RETURNING email;`

	createDownloadToken = `INSERT INTO download_tokens (email, token, expires_at)
    VALUES ($1, $2, $3)
    RETURNING id, created_at;`

	resolveDownloadToken = `SELECT email FROM download_tokens
    WHERE token = $1 AND expires_at > CURRENT_TIMESTAMP;`

	createTrackingEvent = `INSERT INTO download_tracking (
        email, platform, action, browser_name, browser_version, os_name, os_version, user_agent
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	createAppDownload = `INSERT INTO app_downloads (platform, email, download_time, user_agent, ip_address)
    VALUES ($1, $2, CURRENT_TIMESTAMP, $3, $4);`

	downloadStats = `SELECT platform, action, COUNT(*) AS count, MAX(created_at) AS last_attempt
    FROM download_tracking
    GROUP BY platform, action
    ORDER BY platform, action;`

	recentTrackingEvents = `SELECT id, email, platform, action, browser_name, browser_version, os_name, os_version, created_at
    FROM download_tracking
    ORDER BY created_at DESC
    LIMIT $1;`
)
