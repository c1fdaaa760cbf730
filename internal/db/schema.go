package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- REPORT TABLE (shareable analyses)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS report SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS idea ON report TYPE string;
    DEFINE FIELD IF NOT EXISTS stage ON report TYPE string ASSERT $value IN ["stage1", "stage2"];
    DEFINE FIELD IF NOT EXISTS analysis ON report TYPE object FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS evidence ON report TYPE array<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS tier ON report TYPE string;
    DEFINE FIELD IF NOT EXISTS created ON report TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS report_created ON report FIELDS created;
`
