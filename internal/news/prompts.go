package news

// systemPrompt frames every call: capital-safety rules, objectivity, and the
// raw-JSON output contract the parser depends on.
const systemPrompt = `You are NBA Edge Alpha, an expert sports betting analyst AI assistant.
Your role is to analyze NBA games and provide structured data for a disciplined
betting simulation bot.

CRITICAL RULES you must always follow:
1. CAPITAL SAFETY FIRST: Never recommend risking more than 15% of bankroll per bet.
   Never recommend having more than 50% of bankroll exposed simultaneously.
2. OBJECTIVITY: Base all analysis on verifiable, current data (injury reports,
   Vegas moneylines, recent team performance). Never guess or fabricate data.
3. STRUCTURED OUTPUT: Always respond in valid JSON so the bot can parse your output.
   Do not include markdown fences - return raw JSON only.
4. CONSERVATIVE BIAS: When data is uncertain or conflicting, score news_score=0.
   It is better to miss a bet than to take a bad one.
5. SEARCH BEFORE ANSWERING: Always use Google Search to get today's real data.
   Do not rely on training data for injury reports or current odds.`

// morningPromptTemplate takes the date ("2006-01-02") twice.
const morningPromptTemplate = `Today is %[1]s. Use Google Search to find the following for ALL NBA games scheduled TODAY.

For each game return a JSON array where each element has these exact fields:
{
  "home": "Team Name",
  "away": "Team Name",
  "bet_on": "Team Name (the favorite or value pick, must be home or away)",
  "market_id": "polymarket_market_id_or_SIMULATED",
  "poly_price": <integer 1-99, Polymarket Yes price in cents for bet_on>,
  "vegas_prob": <integer 0-100, implied win probability from Vegas moneyline>,
  "news_score": <integer -40 to 20, injury impact score for the bet_on team>,
  "home_away_factor": <5 if bet_on is the home team, -5 if visitor>,
  "streak_pct": <integer 0-100, win %% in last 5 games for bet_on team>,
  "news_summary": "Brief explanation of key injuries or news",
  "rationale": "1-2 sentence explanation of why this is or isn't a value bet"
}

NEWS SCORE GUIDE (for the team you are betting ON):
  Star player OUT unexpectedly:        -35
  Two starters OUT:                    -20
  Star OUT (already known):            -15
  Key player questionable:              -8
  No significant news:                   0
  Starter confirmed back from injury:  +15
  Star confirmed in:                   +20
  Opponent star player OUT:            +20

Search for:
1. Today's NBA schedule
2. Official NBA injury reports (nba.com or ESPN)
3. Vegas moneylines (implied probability: if -110, prob = 110/210 = 52.4%%)
4. Polymarket NBA markets (search "Polymarket NBA %[1]s")
5. Each team's last 5 game results

Return ONLY the raw JSON array. No explanation, no markdown, no extra text.`

// eveningPromptTemplate takes the date and the open bets as indented JSON.
const eveningPromptTemplate = `Today is %s. Use Google Search to find the FINAL SCORES for these NBA games:

%s

For each bet (identified by home + away teams), return a JSON object:
{
  "resolutions": [
    {
      "home": "Team Name",
      "away": "Team Name",
      "winner": "Team Name (the actual winner)",
      "home_score": <integer>,
      "away_score": <integer>,
      "final_score": "Home 110 - Away 105",
      "status": "FINAL"
    }
  ]
}

If a game has not finished yet, set "status": "POSTPONED" or "IN_PROGRESS".
Return ONLY raw JSON. No markdown, no extra text.`

// pingPromptTemplate is the reachability probe used by the startup health
// check. It takes the date.
const pingPromptTemplate = `Today is %s. This is a SYSTEM HEALTH CHECK for an NBA betting bot.

Search Google for "NBA games today %s" and return ONLY this raw JSON object:
{
  "internet_ok": true,
  "games_found": ["Team A vs Team B"],
  "status": "OK"
}`
